// Command aasippm runs a prioritized AA-SIPP-HET planning job from XML
// map/task/dynamic-obstacle files, audits the result for residual
// conflicts, and prints a human-readable report.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/elektrokombinacija/aa-sipp-go/internal/audit"
	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/ioxml"
	"github.com/elektrokombinacija/aa-sipp-go/internal/scheduler"
)

func main() {
	mapPath := flag.String("map", "", "path to the map XML file (required)")
	taskPath := flag.String("task", "", "path to the agent task XML file (required)")
	obstaclePath := flag.String("obstacles", "", "path to the dynamic-obstacle XML file (optional)")
	configPath := flag.String("config", "", "path to an options XML file overlaying the defaults (optional)")

	allowAnyAngle := flag.Bool("allowanyangle", false, "enable the any-angle parent-reset step")
	hWeight := flag.Float64("hweight", 1.0, "heuristic inflation factor, >= 1")
	tWeight := flag.Float64("tweight", 0.0, "rotation time multiplier, >= 0")
	startSafeInterval := flag.Float64("startsafeinterval", 0, "duration other agents must avoid a start area")
	initialPrioritization := flag.String("initialprioritization", "FIFO", "FIFO, LONGESTF, SHORTESTF, or RANDOM")
	rescheduling := flag.String("rescheduling", "NO", "NO, RULED, or RANDOM")
	timeLimit := flag.Float64("timelimit", 10, "wall-clock budget, seconds, for the whole job")
	randSeed := flag.Int64("randseed", 1, "seed for RANDOM initialprioritization/rescheduling")
	csvPath := flag.String("csv", "", "write per-agent results to a CSV file (optional)")

	flag.Parse()

	if *mapPath == "" || *taskPath == "" {
		fmt.Fprintln(os.Stderr, "aasippm: -map and -task are required")
		flag.Usage()
		os.Exit(2)
	}

	m, err := ioxml.LoadMap(*mapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agents, err := ioxml.LoadAgents(*taskPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var obstacles []*core.DynamicObstacle
	if *obstaclePath != "" {
		obstacles, err = ioxml.LoadObstacles(*obstaclePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		cfg, err = ioxml.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	// Flags passed on the command line win over the config file; flags left
	// at their defaults do not clobber what the file set.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "allowanyangle":
			cfg.AllowAnyAngle = *allowAnyAngle
		case "hweight":
			cfg.HWeight = *hWeight
		case "tweight":
			cfg.TWeight = *tWeight
		case "startsafeinterval":
			cfg.StartSafeInterval = *startSafeInterval
		case "timelimit":
			cfg.TimeLimit = *timeLimit
		case "randseed":
			cfg.RandSeed = *randSeed
		case "initialprioritization":
			p, err := parseInitialPrioritization(*initialPrioritization)
			if err != nil {
				flagErr = err
				return
			}
			cfg.InitialPrioritization = p
		case "rescheduling":
			p, err := parseRescheduling(*rescheduling)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Rescheduling = p
		}
	})
	if flagErr != nil {
		fmt.Fprintln(os.Stderr, "aasippm:", flagErr)
		os.Exit(2)
	}

	sch := scheduler.New(m, agents, obstacles, cfg)
	result := sch.Run()

	a := audit.New()
	result.Conflicts = a.Audit(agents, result.PerAgent)

	printReport(result)

	if *csvPath != "" {
		if err := writeCSV(result, *csvPath); err != nil {
			fmt.Fprintln(os.Stderr, "aasippm: writing csv:", err)
			os.Exit(1)
		}
	}
}

func sortedAgentIDs(r *core.AggregateResult) []core.AgentID {
	ids := make([]core.AgentID, 0, len(r.PerAgent))
	for id := range r.PerAgent {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func writeCSV(r *core.AggregateResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"agent", "pathfound", "pathlength", "nodescreated", "numberofsteps", "time_s",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, id := range sortedAgentIDs(r) {
		pr := r.PerAgent[id]
		row := []string{
			fmt.Sprintf("%d", id), fmt.Sprintf("%t", pr.PathFound),
			fmt.Sprintf("%.3f", pr.PathLength), fmt.Sprintf("%d", pr.NodesCreated),
			fmt.Sprintf("%d", pr.NumberOfSteps), fmt.Sprintf("%.3f", pr.Time),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

func printReport(r *core.AggregateResult) {
	fmt.Printf("agents: %d, solved: %d, tries: %d, time: %.3fs\n", r.Agents, r.AgentsSolved, r.Tries, r.TotalTime)
	fmt.Printf("pathfound: %v, error: %s\n", r.PathFound, r.ErrorKind)
	fmt.Printf("pathlength: %.3f, makespan: %.3f, nodescreated: %d, numberofsteps: %d\n",
		r.PathLength, r.Makespan, r.NodesCreated, r.NumberOfSteps)

	for _, id := range sortedAgentIDs(r) {
		pr := r.PerAgent[id]
		status := "failed"
		if pr.PathFound {
			status = "ok"
		}
		fmt.Printf("  agent %d: %s, pathlength=%.3f, nodescreated=%d, numberofsteps=%d, time=%.3fs\n",
			id, status, pr.PathLength, pr.NodesCreated, pr.NumberOfSteps, pr.Time)
	}

	if len(r.Conflicts) == 0 {
		fmt.Println("conflicts: none")
		return
	}
	fmt.Printf("conflicts: %d\n", len(r.Conflicts))
	for _, c := range r.Conflicts {
		fmt.Printf("  agent %d vs agent %d at (%.3f,%.3f), t=%.3f\n", c.Agent1, c.Agent2, c.I, c.J, c.T)
	}
}

func parseInitialPrioritization(s string) (core.InitialPrioritization, error) {
	switch s {
	case "FIFO":
		return core.FIFO, nil
	case "LONGESTF":
		return core.LongestF, nil
	case "SHORTESTF":
		return core.ShortestF, nil
	case "RANDOM":
		return core.RandomOrder, nil
	default:
		return 0, fmt.Errorf("unknown initialprioritization %q", s)
	}
}

func parseRescheduling(s string) (core.ReschedulingPolicy, error) {
	switch s {
	case "NO":
		return core.NoRescheduling, nil
	case "RULED":
		return core.Ruled, nil
	case "RANDOM":
		return core.RandomRescheduling, nil
	default:
		return 0, fmt.Errorf("unknown rescheduling %q", s)
	}
}
