// Package search implements SingleAgentSearch (AA-SIPP): A* over
// (cell, safe-interval) states with rotation-time cost, any-angle
// parent-reset, and safe-interval expansion.
package search

import "github.com/elektrokombinacija/aa-sipp-go/internal/core"

// Node is a single search state.
type Node struct {
	Cell     core.Cell
	G        float64
	F        float64
	Interval core.Interval
	Heading  float64
	Parent   *Node

	// IsSentinel marks the synthetic root the start state's Parent points
	// to, terminating parent-chain walks. Real states never set this; an
	// explicit flag cannot collide with a collapsed interval the way a
	// reserved Interval.Hi value could.
	IsSentinel bool
}
