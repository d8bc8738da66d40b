package ioxml

import (
	"strings"
	"testing"
)

func TestDecodeMapParsesGrid(t *testing.T) {
	doc := `<map><width>3</width><height>2</height><grid>
		<row>0 0 1</row>
		<row>1 0 0</row>
	</grid></map>`

	m, err := decodeMap(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Width != 3 || m.Height != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", m.Width, m.Height)
	}
	if !m.Free(0, 0) || m.Free(0, 2) || !m.Free(1, 1) {
		t.Errorf("grid parsed incorrectly")
	}
}

func TestDecodeMapRejectsRowCountMismatch(t *testing.T) {
	doc := `<map><width>2</width><height>2</height><grid><row>0 0</row></grid></map>`
	if _, err := decodeMap(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for a height/row-count mismatch")
	}
}

func TestDecodeAgentsParsesAttributes(t *testing.T) {
	doc := `<agents>
		<agent id="0" start_i="0" start_j="0" goal_i="4" goal_j="4" size="0.5" movespeed="1" rotationspeed="90"/>
	</agents>`

	agents, err := decodeAgents(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}
	if agents[0].Goal.I != 4 || agents[0].Goal.J != 4 {
		t.Errorf("unexpected goal: %+v", agents[0].Goal)
	}
}

func TestDecodeAgentsRejectsBadRadius(t *testing.T) {
	doc := `<agents><agent id="0" start_i="0" start_j="0" goal_i="1" goal_j="1" size="2" movespeed="1" rotationspeed="1"/></agents>`
	if _, err := decodeAgents(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for size outside (0,1]")
	}
}

func TestDecodeObstaclesParsesSections(t *testing.T) {
	doc := `<dynamicobstacles>
		<obstacle id="0" size="0.4">
			<section i_start="0" j_start="0" i_end="4" j_end="0" t_start="0" t_end="4"/>
		</obstacle>
	</dynamicobstacles>`

	obstacles, err := decodeObstacles(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obstacles) != 1 || len(obstacles[0].Sections) != 1 {
		t.Fatalf("unexpected parse result: %+v", obstacles)
	}
}

func TestDecodeConfigOverlaysDefaults(t *testing.T) {
	doc := `<options><allowanyangle>true</allowanyangle><hweight>1.2</hweight></options>`
	cfg, err := decodeConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AllowAnyAngle {
		t.Error("expected allowanyangle to be true")
	}
	if cfg.HWeight != 1.2 {
		t.Errorf("expected hweight 1.2, got %v", cfg.HWeight)
	}
	if cfg.TimeLimit != 10 {
		t.Errorf("expected the default timelimit to survive, got %v", cfg.TimeLimit)
	}
}

func TestDecodeConfigRejectsInvalidHWeight(t *testing.T) {
	doc := `<options><hweight>0.5</hweight></options>`
	if _, err := decodeConfig(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for hweight < 1")
	}
}
