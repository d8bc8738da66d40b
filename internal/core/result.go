package core

// Waypoint is a corner or wait-state in an agent's primary path: the cell,
// the time the agent is there, and the heading it arrives with.
type Waypoint struct {
	I, J    int
	G       float64
	Heading float64
}

// Cell returns the grid cell of this waypoint.
func (w Waypoint) Cell() Cell { return Cell{I: w.I, J: w.J} }

// PrimaryPath is the waypoint-level plan: corners plus synthetic wait-states.
type PrimaryPath []Waypoint

// TimedCell is a single step of a dense, per-cell rasterised path.
type TimedCell struct {
	I, J int
	G    float64
}

// SecondaryPath is the dense per-cell rasterisation of a PrimaryPath.
type SecondaryPath []TimedCell

// PathResult holds the outcome of a single agent's search.
type PathResult struct {
	AgentID AgentID

	PathFound bool
	Primary   PrimaryPath
	Secondary SecondaryPath

	PathLength    float64 // == Primary's final G, 0 if not found
	NodesCreated  int     // open+closed size at termination
	NumberOfSteps int     // closed-set size at termination
	Time          float64 // wall-clock spent searching for this agent, seconds

	ErrorKind ErrorKind
}

// Conflict is a residual collision detected by the ConflictAuditor.
type Conflict struct {
	Agent1, Agent2 AgentID
	I, J           float64 // collision point, in grid coordinates
	T              float64
}

// AggregateResult is the outcome of a full planning job across all agents.
type AggregateResult struct {
	PathFound bool // true iff every agent was planned

	Agents   int
	PerAgent map[AgentID]*PathResult
	Priority []AgentID // final priority order used to produce this result

	PathLength    float64 // sum of path lengths across agents
	Makespan      float64 // max G at any agent's goal
	NodesCreated  int
	NumberOfSteps int

	AgentsSolved int
	Tries        int // number of outer-loop (priority-ordering) attempts

	TotalTime float64 // wall-clock for the whole job, seconds

	Conflicts []Conflict // populated by the ConflictAuditor, if run

	ErrorKind ErrorKind // the terminal error kind, if PathFound is false
}

// NewAggregateResult creates an empty result for a job with n agents.
func NewAggregateResult(n int) *AggregateResult {
	return &AggregateResult{
		Agents:   n,
		PerAgent: make(map[AgentID]*PathResult, n),
	}
}
