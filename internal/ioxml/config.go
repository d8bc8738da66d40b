package ioxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

type configXML struct {
	XMLName               xml.Name `xml:"options"`
	AllowAnyAngle         bool     `xml:"allowanyangle"`
	HWeight               float64  `xml:"hweight"`
	TWeight               float64  `xml:"tweight"`
	StartSafeInterval     float64  `xml:"startsafeinterval"`
	InitialPrioritization string   `xml:"initialprioritization"`
	Rescheduling          string   `xml:"rescheduling"`
	TimeLimit             float64  `xml:"timelimit"`
	RandSeed              int64    `xml:"randseed"`
}

// LoadConfig reads a planner configuration, overlaying it onto
// core.DefaultConfig() so any option the file omits keeps its default.
func LoadConfig(path string) (core.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Config{}, &core.InvalidInputError{Reason: err.Error()}
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (core.Config, error) {
	cfg := core.DefaultConfig()

	var doc configXML
	doc.HWeight = cfg.HWeight
	doc.TWeight = cfg.TWeight
	doc.StartSafeInterval = cfg.StartSafeInterval
	doc.TimeLimit = cfg.TimeLimit
	doc.RandSeed = cfg.RandSeed

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return core.Config{}, &core.InvalidInputError{Reason: fmt.Sprintf("options: %s", err)}
	}

	cfg.AllowAnyAngle = doc.AllowAnyAngle
	cfg.HWeight = doc.HWeight
	cfg.TWeight = doc.TWeight
	cfg.StartSafeInterval = doc.StartSafeInterval
	cfg.TimeLimit = doc.TimeLimit
	cfg.RandSeed = doc.RandSeed

	if doc.InitialPrioritization != "" {
		p, err := parseInitialPrioritization(doc.InitialPrioritization)
		if err != nil {
			return core.Config{}, &core.InvalidInputError{Reason: err.Error()}
		}
		cfg.InitialPrioritization = p
	}
	if doc.Rescheduling != "" {
		p, err := parseRescheduling(doc.Rescheduling)
		if err != nil {
			return core.Config{}, &core.InvalidInputError{Reason: err.Error()}
		}
		cfg.Rescheduling = p
	}

	if cfg.HWeight < 1 {
		return core.Config{}, &core.InvalidInputError{Reason: "hweight must be >= 1"}
	}
	if cfg.TWeight < 0 {
		return core.Config{}, &core.InvalidInputError{Reason: "tweight must be >= 0"}
	}
	return cfg, nil
}

func parseInitialPrioritization(s string) (core.InitialPrioritization, error) {
	switch strings.ToUpper(s) {
	case "FIFO":
		return core.FIFO, nil
	case "LONGESTF":
		return core.LongestF, nil
	case "SHORTESTF":
		return core.ShortestF, nil
	case "RANDOM":
		return core.RandomOrder, nil
	default:
		return 0, fmt.Errorf("options: unknown initialprioritization %q", s)
	}
}

func parseRescheduling(s string) (core.ReschedulingPolicy, error) {
	switch strings.ToUpper(s) {
	case "NO":
		return core.NoRescheduling, nil
	case "RULED":
		return core.Ruled, nil
	case "RANDOM":
		return core.RandomRescheduling, nil
	default:
		return 0, fmt.Errorf("options: unknown rescheduling %q", s)
	}
}
