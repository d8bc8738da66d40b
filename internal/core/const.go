package core

import "math"

// Epsilon is the tolerance used throughout the planner for floating-point
// interval and heading comparisons.
const Epsilon = 1e-5

// Infinity stands in for an unbounded interval upper bound.
var Infinity = math.Inf(1)
