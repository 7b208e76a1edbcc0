package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stopline-planner-service/internal/domain"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stoplines.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadStopLineModules(t *testing.T) {
	path := writeSeedFile(t, `[
		{"id": 1, "p1": {"x": 50, "y": -5}, "p2": {"x": 50, "y": 5}},
		{"id": 2, "p1": {"x": 80, "y": -5}, "p2": {"x": 80, "y": 5}, "stop_margin": 1.5, "stop_duration_sec": 3.0}
	]`)

	defaults := domain.PlannerParam{
		StopMargin:             0.5,
		HoldStopMarginDistance: 1.0,
		StopDuration:           2 * time.Second,
		StopLineExtendLength:   5.0,
	}

	modules, err := LoadStopLineModules(path, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(modules))
	}

	if got := modules[0].Param(); got != defaults {
		t.Fatalf("module 1 params = %+v, want defaults", got)
	}

	got := modules[1].Param()
	if got.StopMargin != 1.5 {
		t.Fatalf("module 2 stop margin = %g, want the 1.5 override", got.StopMargin)
	}
	if got.StopDuration != 3*time.Second {
		t.Fatalf("module 2 stop duration = %s, want 3s", got.StopDuration)
	}
	if got.HoldStopMarginDistance != 1.0 {
		t.Fatalf("module 2 hold margin = %g, want the default", got.HoldStopMarginDistance)
	}

	if modules[1].Line().P1.X != 80 {
		t.Fatalf("module 2 line = %+v", modules[1].Line())
	}
}

func TestLoadStopLineModulesRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", "{"},
		{"non-positive id", `[{"id": 0, "p1": {"x": 1}, "p2": {"x": 2}}]`},
		{"duplicate id", `[{"id": 1, "p1": {"x": 1}, "p2": {"x": 2}}, {"id": 1, "p1": {"x": 3}, "p2": {"x": 4}}]`},
	}

	for _, tc := range cases {
		path := writeSeedFile(t, tc.content)
		if _, err := LoadStopLineModules(path, domain.PlannerParam{}); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestLoadStopLineModulesMissingFile(t *testing.T) {
	if _, err := LoadStopLineModules(filepath.Join(t.TempDir(), "absent.json"), domain.PlannerParam{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
