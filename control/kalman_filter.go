// Package control holds small signal-processing helpers that sit
// upstream of the planning package: things that turn a noisy sensor
// stream into the clean point estimates a planner's caller feeds it.
package control

import "gonum.org/v1/gonum/mat"

// PositionEstimator smooths a noisy 2D position stream with a
// constant-velocity Kalman filter. State is [x, y, vx, vy]; each Update
// is one predict-then-correct cycle against a position-only
// observation.
type PositionEstimator struct {
	x *mat.VecDense // state estimate
	p *mat.Dense    // state covariance

	f *mat.Dense // process model (state transition)
	q *mat.Dense // process noise
	h *mat.Dense // observation model (state -> position)
	r *mat.Dense // observation noise
}

// NewPositionEstimator constructs an estimator seeded at (x0, y0) with
// zero velocity. dt is the expected interval between Update calls;
// processNoise and measurementNoise scale the filter's trust in its own
// motion model versus incoming measurements (larger measurementNoise
// means the filter believes its prediction more than a new reading).
func NewPositionEstimator(x0, y0, dt, processNoise, measurementNoise float64) *PositionEstimator {
	e := &PositionEstimator{
		x: mat.NewVecDense(4, []float64{x0, y0, 0, 0}),
		p: mat.NewDense(4, 4, nil),
		f: mat.NewDense(4, 4, []float64{
			1, 0, dt, 0,
			0, 1, 0, dt,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}),
		q: scaledIdentity(4, processNoise),
		h: mat.NewDense(2, 4, []float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
		}),
		r: scaledIdentity(2, measurementNoise),
	}
	for i := 0; i < 4; i++ {
		e.p.Set(i, i, 1)
	}
	return e
}

func scaledIdentity(n int, scale float64) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, scale)
	}
	return d
}

// Update runs one predict-correct cycle against a new noisy (x, y)
// measurement and returns the refined position estimate.
func (e *PositionEstimator) Update(x, y float64) (px, py float64) {
	e.predict()
	e.correct(mat.NewVecDense(2, []float64{x, y}))
	return e.x.AtVec(0), e.x.AtVec(1)
}

// predict projects the state and covariance forward one step under the
// constant-velocity process model.
func (e *PositionEstimator) predict() {
	var xNext mat.VecDense
	xNext.MulVec(e.f, e.x)
	e.x = &xNext

	var fp, fpft, pNext mat.Dense
	fp.Mul(e.f, e.p)
	fpft.Mul(&fp, e.f.T())
	pNext.Add(&fpft, e.q)
	e.p = &pNext
}

// correct folds a position measurement z into the predicted state using
// the standard Kalman gain update.
func (e *PositionEstimator) correct(z *mat.VecDense) {
	var y mat.VecDense
	y.MulVec(e.h, e.x)
	y.SubVec(z, &y)

	var hp mat.Dense
	hp.Mul(e.h, e.p)
	var hpht, s mat.Dense
	hpht.Mul(&hp, e.h.T())
	s.Add(&hpht, e.r)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		// A singular innovation covariance means this measurement carries
		// no independent information; skip the correction rather than
		// propagate a NaN through the state.
		return
	}

	var pht mat.Dense
	pht.Mul(e.p, e.h.T())
	var k mat.Dense
	k.Mul(&pht, &sInv)

	var ky mat.VecDense
	ky.MulVec(&k, &y)
	var xNext mat.VecDense
	xNext.AddVec(e.x, &ky)
	e.x = &xNext

	var kh, ikh, pNext mat.Dense
	kh.Mul(&k, e.h)
	ikh.Sub(scaledIdentity(4, 1), &kh)
	pNext.Mul(&ikh, e.p)
	e.p = &pNext
}

// State returns the current [x, y, vx, vy] estimate.
func (e *PositionEstimator) State() []float64 {
	return []float64{e.x.AtVec(0), e.x.AtVec(1), e.x.AtVec(2), e.x.AtVec(3)}
}
