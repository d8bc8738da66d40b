// Command geninstances generates deterministic AA-SIPP-HET test instances
// with configurable parameters, for benchmarking and regression fixtures.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// InstanceParams defines the parameters used to generate one instance.
type InstanceParams struct {
	Seed            int64   `json:"seed"`
	NumAgents       int     `json:"num_agents"`
	GridWidth       int     `json:"grid_width"`
	GridHeight      int     `json:"grid_height"`
	ObstacleDensity float64 `json:"obstacle_density"`  // fraction of cells blocked
	NumDynObstacles int     `json:"num_dyn_obstacles"` // moving obstacles
	AgentRadius     float64 `json:"agent_radius"`
	AgentSpeed      float64 `json:"agent_speed"`
	AgentOmega      float64 `json:"agent_omega"`
}

// Agent mirrors an agent task entry.
type Agent struct {
	ID        int     `json:"id"`
	StartI    int     `json:"start_i"`
	StartJ    int     `json:"start_j"`
	GoalI     int     `json:"goal_i"`
	GoalJ     int     `json:"goal_j"`
	Size      float64 `json:"size"`
	MoveSpeed float64 `json:"movespeed"`
	RotSpeed  float64 `json:"rotationspeed"`
}

// Section is one leg of a dynamic obstacle's piecewise-linear trajectory.
type Section struct {
	IStart float64 `json:"i_start"`
	JStart float64 `json:"j_start"`
	IEnd   float64 `json:"i_end"`
	JEnd   float64 `json:"j_end"`
	TStart float64 `json:"t_start"`
	TEnd   float64 `json:"t_end"`
}

// DynamicObstacle is a moving entity with a known, piecewise-linear trajectory.
type DynamicObstacle struct {
	ID       int       `json:"id"`
	Size     float64   `json:"size"`
	Sections []Section `json:"sections"`
}

// Instance is a complete generated AA-SIPP-HET problem.
type Instance struct {
	Name      string            `json:"name"`
	Params    InstanceParams    `json:"params"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Grid      [][]int           `json:"grid"` // row-major, 0 = free, 1 = blocked
	Agents    []Agent           `json:"agents"`
	Obstacles []DynamicObstacle `json:"obstacles"`
	Generated string            `json:"generated"`
}

// generateInstance creates one instance from params.
func generateInstance(params InstanceParams) *Instance {
	rng := rand.New(rand.NewSource(params.Seed))

	inst := &Instance{
		Name:      fmt.Sprintf("aasippm_%d_%dx%d_%d", params.NumAgents, params.GridWidth, params.GridHeight, params.Seed),
		Params:    params,
		Width:     params.GridWidth,
		Height:    params.GridHeight,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	inst.Grid = make([][]int, params.GridHeight)
	for i := range inst.Grid {
		inst.Grid[i] = make([]int, params.GridWidth)
	}

	used := make(map[[2]int]bool)
	placeFree := func() (int, int) {
		for {
			i, j := rng.Intn(params.GridHeight), rng.Intn(params.GridWidth)
			if inst.Grid[i][j] == 0 {
				return i, j
			}
		}
	}

	// Obstacle-free corners reserve room for start/goal clustering; block
	// cells uniformly at random elsewhere.
	reserved := map[[2]int]bool{
		{0, 0}: true, {0, params.GridWidth - 1}: true,
		{params.GridHeight - 1, 0}: true, {params.GridHeight - 1, params.GridWidth - 1}: true,
	}
	for i := 0; i < params.GridHeight; i++ {
		for j := 0; j < params.GridWidth; j++ {
			if reserved[[2]int{i, j}] {
				continue
			}
			if rng.Float64() < params.ObstacleDensity {
				inst.Grid[i][j] = 1
			}
		}
	}

	for id := 0; id < params.NumAgents; id++ {
		startI, startJ := placeFree()
		for used[[2]int{startI, startJ}] {
			startI, startJ = placeFree()
		}
		used[[2]int{startI, startJ}] = true

		goalI, goalJ := placeFree()
		for used[[2]int{goalI, goalJ}] {
			goalI, goalJ = placeFree()
		}
		used[[2]int{goalI, goalJ}] = true

		inst.Agents = append(inst.Agents, Agent{
			ID:        id,
			StartI:    startI,
			StartJ:    startJ,
			GoalI:     goalI,
			GoalJ:     goalJ,
			Size:      params.AgentRadius,
			MoveSpeed: params.AgentSpeed,
			RotSpeed:  params.AgentOmega,
		})
	}

	for id := 0; id < params.NumDynObstacles; id++ {
		i0, j0 := float64(rng.Intn(params.GridHeight)), float64(rng.Intn(params.GridWidth))
		i1, j1 := float64(rng.Intn(params.GridHeight)), float64(rng.Intn(params.GridWidth))
		dur := 5.0 + rng.Float64()*15.0
		inst.Obstacles = append(inst.Obstacles, DynamicObstacle{
			ID:   id,
			Size: 0.3 + rng.Float64()*0.3,
			Sections: []Section{
				{IStart: i0, JStart: j0, IEnd: i1, JEnd: j1, TStart: 0, TEnd: dur},
			},
		})
	}

	return inst
}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	numAgents := flag.Int("agents", 10, "number of agents")
	gridWidth := flag.Int("width", 20, "grid width")
	gridHeight := flag.Int("height", 20, "grid height")
	obstacleDensity := flag.Float64("density", 0.1, "fraction of cells blocked (0-1)")
	numDynObstacles := flag.Int("dynobstacles", 0, "number of moving obstacles")
	agentRadius := flag.Float64("radius", 0.4, "agent disc radius, in cell units (0,1]")
	agentSpeed := flag.Float64("speed", 1.0, "agent translational speed, cell units per time unit")
	agentOmega := flag.Float64("omega", 45.0, "agent rotational speed, degrees per time unit")
	outputDir := flag.String("output", "testdata", "output directory")
	scalingMode := flag.Bool("scaling", false, "generate a scaling test suite (10, 25, 50, 100 agents)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var instances []*Instance

	if *scalingMode {
		for _, size := range []int{10, 25, 50, 100} {
			gridSize := size
			if gridSize < 20 {
				gridSize = 20
			}
			params := InstanceParams{
				Seed:            *seed,
				NumAgents:       size,
				GridWidth:       gridSize,
				GridHeight:      gridSize,
				ObstacleDensity: *obstacleDensity,
				NumDynObstacles: *numDynObstacles,
				AgentRadius:     *agentRadius,
				AgentSpeed:      *agentSpeed,
				AgentOmega:      *agentOmega,
			}
			instances = append(instances, generateInstance(params))
		}
	} else {
		params := InstanceParams{
			Seed:            *seed,
			NumAgents:       *numAgents,
			GridWidth:       *gridWidth,
			GridHeight:      *gridHeight,
			ObstacleDensity: *obstacleDensity,
			NumDynObstacles: *numDynObstacles,
			AgentRadius:     *agentRadius,
			AgentSpeed:      *agentSpeed,
			AgentOmega:      *agentOmega,
		}
		instances = append(instances, generateInstance(params))
	}

	for _, inst := range instances {
		filename := filepath.Join(*outputDir, inst.Name+".json")
		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error marshaling instance %s: %v\n", inst.Name, err)
			continue
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing instance %s: %v\n", filename, err)
			continue
		}
		fmt.Printf("generated: %s (%d agents, %dx%d grid)\n",
			filename, inst.Params.NumAgents, inst.Params.GridWidth, inst.Params.GridHeight)
	}
}
