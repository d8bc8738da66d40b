package ioxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

type agentsXML struct {
	XMLName xml.Name `xml:"agents"`
	Agent   []struct {
		ID        int     `xml:"id,attr"`
		StartI    int     `xml:"start_i,attr"`
		StartJ    int     `xml:"start_j,attr"`
		GoalI     int     `xml:"goal_i,attr"`
		GoalJ     int     `xml:"goal_j,attr"`
		Size      float64 `xml:"size,attr"`
		MoveSpeed float64 `xml:"movespeed,attr"`
		RotSpeed  float64 `xml:"rotationspeed,attr"`
	} `xml:"agent"`
}

// LoadAgents reads a task description: a flat list of <agent> elements
// with id/start/goal/size/movespeed/rotationspeed attributes.
func LoadAgents(path string) ([]*core.Agent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.InvalidInputError{Reason: err.Error()}
	}
	defer f.Close()
	return decodeAgents(f)
}

func decodeAgents(r io.Reader) ([]*core.Agent, error) {
	var doc agentsXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &core.InvalidInputError{Reason: fmt.Sprintf("agents: %s", err)}
	}

	agents := make([]*core.Agent, 0, len(doc.Agent))
	for idx, a := range doc.Agent {
		if a.Size <= 0 || a.Size > 1 {
			return nil, &core.InvalidInputError{Reason: fmt.Sprintf("agent %d: size %v out of (0,1]", idx, a.Size)}
		}
		if a.MoveSpeed <= 0 || a.RotSpeed <= 0 {
			return nil, &core.InvalidInputError{Reason: fmt.Sprintf("agent %d: movespeed and rotationspeed must be > 0", idx)}
		}
		agents = append(agents, &core.Agent{
			ID:     core.AgentID(a.ID),
			Start:  core.Cell{I: a.StartI, J: a.StartJ},
			Goal:   core.Cell{I: a.GoalI, J: a.GoalJ},
			Radius: a.Size,
			Speed:  a.MoveSpeed,
			Omega:  a.RotSpeed,
		})
	}
	return agents, nil
}
