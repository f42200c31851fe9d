// Command dstarplan is a small example driver for the planning
// package: it loads a grid from a text file, plans a path across it,
// renders the result, then demonstrates a replan after a cell's cost
// changes and, optionally, a moving start fed by a noisy position
// estimator.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rdk/logging"
	"go.viam.com/utils"

	"go.viam.com/dstarplan/control"
	"go.viam.com/dstarplan/planning"
	"go.viam.com/dstarplan/planning/gridplan"
)

func main() {
	app := &cli.App{
		Name:  "dstarplan",
		Usage: "plan and replan a path across a grid with the D*-lite engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "grid", Required: true, Usage: "path to a grid file"},
			&cli.StringFlag{Name: "start", Value: "0,0", Usage: "start coordinate as X,Y"},
			&cli.StringFlag{Name: "goal", Required: true, Usage: "goal coordinate as X,Y"},
			&cli.StringSliceFlag{Name: "set", Usage: "mutate a cell before replanning, as X,Y=COST (repeatable)"},
			&cli.BoolFlag{Name: "estimate", Usage: "drive UpdateStart from a noisy position estimator along the first plan"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := logging.NewLogger("dstarplan")

	grid, err := loadGrid(c.String("grid"))
	if err != nil {
		return err
	}
	start, err := parseCoord(c.String("start"))
	if err != nil {
		return err
	}
	goal, err := parseCoord(c.String("goal"))
	if err != nil {
		return err
	}

	oracle := gridplan.NewOracle(grid)
	engine := planning.New[gridplan.Coord](logger, oracle, start, goal)

	ctx := context.Background()
	path, err := engine.Plan(ctx)
	if err != nil {
		return errors.Wrap(err, "initial plan")
	}
	renderGrid(grid, path)
	printPath("initial plan", path)

	if c.Bool("estimate") {
		if err := driveWithEstimator(ctx, engine, path); err != nil {
			return err
		}
	}

	for _, spec := range c.StringSlice("set") {
		coord, cost, err := parseSetSpec(spec)
		if err != nil {
			return err
		}
		grid.SetCost(engine, coord, cost)
	}
	if len(c.StringSlice("set")) > 0 {
		path, err = engine.Plan(ctx)
		if err != nil {
			return errors.Wrap(err, "replan after cell mutation")
		}
		renderGrid(grid, path)
		printPath("replan after --set", path)
	}

	return nil
}

// driveWithEstimator feeds each waypoint of path through a noisy
// position estimator and calls UpdateStart with the smoothed result,
// demonstrating how an external odometry/localization loop is meant to
// keep the engine's start vertex current.
func driveWithEstimator(ctx context.Context, engine *planning.Engine[gridplan.Coord], path []gridplan.Coord) error {
	if len(path) == 0 {
		return nil
	}
	est := control.NewPositionEstimator(float64(path[0].X), float64(path[0].Y), 1.0, 0.05, 0.5)

	done := make(chan error, 1)
	utils.PanicCapturingGo(func() {
		for _, wp := range path {
			px, py := est.Update(float64(wp.X), float64(wp.Y))
			engine.UpdateStart(gridplan.Coord{X: int(px + 0.5), Y: int(py + 0.5)})
			if _, err := engine.Plan(ctx); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	})
	return <-done
}

func parseSetSpec(spec string) (gridplan.Coord, int8, error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return gridplan.Coord{}, 0, errors.Errorf("expected X,Y=COST, got %q", spec)
	}
	coord, err := parseCoord(parts[0])
	if err != nil {
		return gridplan.Coord{}, 0, err
	}
	cost, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return gridplan.Coord{}, 0, errors.Wrapf(err, "parsing cost in %q", spec)
	}
	return coord, int8(cost), nil
}

func printPath(label string, path []gridplan.Coord) {
	if len(path) == 0 {
		fmt.Println(color.YellowString("%s: no path found", label))
		return
	}
	fmt.Printf("%s: %d steps\n", label, len(path)-1)
}

func renderGrid(g *gridplan.Grid, path []gridplan.Coord) {
	onPath := make(map[gridplan.Coord]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	t := table.NewWriter()
	for y := 0; y < g.Height(); y++ {
		row := make(table.Row, g.Width())
		for x := 0; x < g.Width(); x++ {
			coord := gridplan.Coord{X: x, Y: y}
			cell := fmt.Sprintf("%d", g.Get(coord))
			if onPath[coord] {
				cell = color.GreenString("*")
			} else if g.Get(coord) < 0 {
				cell = color.RedString("#")
			}
			row[x] = cell
		}
		t.AppendRow(row)
	}
	fmt.Println(t.Render())
}
