package ioxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

type obstaclesXML struct {
	XMLName  xml.Name `xml:"dynamicobstacles"`
	Obstacle []struct {
		ID      int     `xml:"id,attr"`
		Size    float64 `xml:"size,attr"`
		Section []struct {
			IStart float64 `xml:"i_start,attr"`
			JStart float64 `xml:"j_start,attr"`
			IEnd   float64 `xml:"i_end,attr"`
			JEnd   float64 `xml:"j_end,attr"`
			TStart float64 `xml:"t_start,attr"`
			TEnd   float64 `xml:"t_end,attr"`
		} `xml:"section"`
	} `xml:"obstacle"`
}

// LoadObstacles reads a dynamic-obstacle description: a list of <obstacle>
// elements, each a time-ordered sequence of <section> legs.
func LoadObstacles(path string) ([]*core.DynamicObstacle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.InvalidInputError{Reason: err.Error()}
	}
	defer f.Close()
	return decodeObstacles(f)
}

func decodeObstacles(r io.Reader) ([]*core.DynamicObstacle, error) {
	var doc obstaclesXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &core.InvalidInputError{Reason: fmt.Sprintf("obstacles: %s", err)}
	}

	obstacles := make([]*core.DynamicObstacle, 0, len(doc.Obstacle))
	for idx, o := range doc.Obstacle {
		if o.Size <= 0 {
			return nil, &core.InvalidInputError{Reason: fmt.Sprintf("obstacle %d: size must be > 0", idx)}
		}
		sections := make([]core.Section, 0, len(o.Section))
		for si, sec := range o.Section {
			if sec.TEnd < sec.TStart {
				return nil, &core.InvalidInputError{Reason: fmt.Sprintf("obstacle %d section %d: t_end before t_start", idx, si)}
			}
			sections = append(sections, core.Section{
				IStart: sec.IStart, JStart: sec.JStart,
				IEnd: sec.IEnd, JEnd: sec.JEnd,
				TStart: sec.TStart, TEnd: sec.TEnd,
			})
		}
		obstacles = append(obstacles, &core.DynamicObstacle{
			ID:       o.ID,
			Radius:   o.Size,
			Sections: sections,
		})
	}
	return obstacles, nil
}
