// Package ioxml loads maps, agent tasks, and dynamic-obstacle trajectories
// from XML files, keeping all file I/O out of the planning packages.
package ioxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

type mapXML struct {
	XMLName xml.Name `xml:"map"`
	Width   int      `xml:"width"`
	Height  int      `xml:"height"`
	Grid    struct {
		Rows []string `xml:"row"`
	} `xml:"grid"`
}

// LoadMap reads a map description: a width, a height, and height <row>
// elements each holding width space-separated 0/1 cells.
func LoadMap(path string) (*core.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.InvalidInputError{Reason: err.Error()}
	}
	defer f.Close()
	return decodeMap(f)
}

func decodeMap(r io.Reader) (*core.Map, error) {
	var doc mapXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &core.InvalidInputError{Reason: fmt.Sprintf("map: %s", err)}
	}
	if len(doc.Grid.Rows) != doc.Height {
		return nil, &core.InvalidInputError{Reason: fmt.Sprintf("map: declared height %d but found %d rows", doc.Height, len(doc.Grid.Rows))}
	}

	cells := make([]int, 0, doc.Width*doc.Height)
	for r, row := range doc.Grid.Rows {
		vals, err := parseIntRow(row)
		if err != nil {
			return nil, &core.InvalidInputError{Reason: fmt.Sprintf("map: row %d: %s", r, err)}
		}
		if len(vals) != doc.Width {
			return nil, &core.InvalidInputError{Reason: fmt.Sprintf("map: row %d has %d cells, want %d", r, len(vals), doc.Width)}
		}
		cells = append(cells, vals...)
	}

	m, err := core.NewMapFromGrid(doc.Width, doc.Height, cells)
	if err != nil {
		return nil, &core.InvalidInputError{Reason: err.Error()}
	}
	return m, nil
}

func parseIntRow(row string) ([]int, error) {
	var vals []int
	var cur int
	var inNum bool
	flush := func() {
		if inNum {
			vals = append(vals, cur)
			cur, inNum = 0, false
		}
	}
	for _, ch := range row {
		switch {
		case ch >= '0' && ch <= '9':
			cur = cur*10 + int(ch-'0')
			inNum = true
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			return nil, fmt.Errorf("unexpected character %q", ch)
		}
	}
	flush()
	return vals, nil
}
