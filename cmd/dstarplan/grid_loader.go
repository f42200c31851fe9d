package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/dstarplan/planning/gridplan"
)

// loadGrid reads a dense grid from path: one row per line, cells
// separated by whitespace, each cell a signed byte (negative marks the
// cell untraversable). This is the one file format owned by this
// command; neither planning nor gridplan knows anything about it.
func loadGrid(path string) (*gridplan.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening grid file")
	}
	defer f.Close()

	var rows [][]int8
	width := -1
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int8, len(fields))
		for i, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing cell %q", tok)
			}
			row[i] = int8(v)
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, errors.Errorf("grid file has inconsistent row widths: %d vs %d", len(row), width)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading grid file")
	}
	if len(rows) == 0 {
		return nil, errors.New("grid file is empty")
	}

	g := gridplan.NewGrid(width, len(rows))
	for y, row := range rows {
		for x, v := range row {
			g.Set(gridplan.Coord{X: x, Y: y}, v)
		}
	}
	return g, nil
}

func parseCoord(s string) (gridplan.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return gridplan.Coord{}, errors.Errorf("expected coordinate as X,Y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return gridplan.Coord{}, errors.Wrapf(err, "parsing X in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return gridplan.Coord{}, errors.Wrapf(err, "parsing Y in %q", s)
	}
	return gridplan.Coord{X: x, Y: y}, nil
}
