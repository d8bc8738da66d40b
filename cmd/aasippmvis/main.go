// Command aasippmvis provides a GUI visualization for AA-SIPP-HET plans.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/ioxml"
	"github.com/elektrokombinacija/aa-sipp-go/internal/scheduler"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis"
)

func main() {
	mapPath := flag.String("map", "", "path to a map XML file (default: a built-in demo grid)")
	taskPath := flag.String("task", "", "path to an agent task XML file (default: a built-in demo task)")
	obstaclePath := flag.String("obstacles", "", "path to a dynamic-obstacle XML file (optional)")
	flag.Parse()

	m, agents, obstacles, err := loadInstance(*mapPath, *taskPath, *obstaclePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aasippmvis:", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	sch := scheduler.New(m, agents, obstacles, cfg)
	result := sch.Run()

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("AA-SIPP-HET Visualizer"),
			app.Size(unit.Dp(1100), unit.Dp(820)),
		)

		application := vis.NewApp(m, agents, obstacles, result)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loadInstance(mapPath, taskPath, obstaclePath string) (*core.Map, []*core.Agent, []*core.DynamicObstacle, error) {
	if mapPath == "" || taskPath == "" {
		return demoInstance()
	}
	m, err := ioxml.LoadMap(mapPath)
	if err != nil {
		return nil, nil, nil, err
	}
	agents, err := ioxml.LoadAgents(taskPath)
	if err != nil {
		return nil, nil, nil, err
	}
	var obstacles []*core.DynamicObstacle
	if obstaclePath != "" {
		obstacles, err = ioxml.LoadObstacles(obstaclePath)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return m, agents, obstacles, nil
}

// demoInstance builds a small built-in scenario so the visualizer has
// something to show without any input files: three agents crossing an
// 8x8 empty grid.
func demoInstance() (*core.Map, []*core.Agent, []*core.DynamicObstacle, error) {
	m := core.NewMap(8, 8)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 7, J: 7}, Radius: 0.4, Speed: 1, Omega: 45},
		{ID: 1, Start: core.Cell{I: 0, J: 7}, Goal: core.Cell{I: 7, J: 0}, Radius: 0.4, Speed: 1, Omega: 45},
		{ID: 2, Start: core.Cell{I: 7, J: 0}, Goal: core.Cell{I: 0, J: 7}, Radius: 0.4, Speed: 1.2, Omega: 60},
	}
	return m, agents, nil, nil
}
