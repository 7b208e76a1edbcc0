package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/stopline"
)

type pointSeed struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// One mapped stop line. Per-line parameter overrides are optional;
// absent fields fall back to the planner-wide defaults.
type StopLineSeed struct {
	ID                     int64     `json:"id"`
	P1                     pointSeed `json:"p1"`
	P2                     pointSeed `json:"p2"`
	StopMargin             *float64  `json:"stop_margin"`
	HoldStopMarginDistance *float64  `json:"hold_stop_margin_distance"`
	StopDurationSec        *float64  `json:"stop_duration_sec"`
	StopLineExtendLength   *float64  `json:"stop_line_extend_length"`
}

// LoadStopLineModules reads mapped stop lines from a JSON file and
// constructs one rule instance per line.
func LoadStopLineModules(jsonPath string, defaults domain.PlannerParam) ([]*stopline.Module, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load stop lines: read %q: %w", jsonPath, err)
	}

	var seeds []StopLineSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return nil, fmt.Errorf("load stop lines: parse json: %w", err)
	}

	modules := make([]*stopline.Module, 0, len(seeds))
	seen := make(map[int64]struct{}, len(seeds))
	for i, s := range seeds {
		if s.ID <= 0 {
			return nil, fmt.Errorf("load stop lines: invalid id at index %d: %d", i, s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("load stop lines: duplicate id %d", s.ID)
		}
		seen[s.ID] = struct{}{}

		param := defaults
		if s.StopMargin != nil {
			param.StopMargin = *s.StopMargin
		}
		if s.HoldStopMarginDistance != nil {
			param.HoldStopMarginDistance = *s.HoldStopMarginDistance
		}
		if s.StopDurationSec != nil {
			param.StopDuration = time.Duration(*s.StopDurationSec * float64(time.Second))
		}
		if s.StopLineExtendLength != nil {
			param.StopLineExtendLength = *s.StopLineExtendLength
		}

		line := domain.StopLine{
			P1: domain.Point{X: s.P1.X, Y: s.P1.Y, Z: s.P1.Z},
			P2: domain.Point{X: s.P2.X, Y: s.P2.Y, Z: s.P2.Z},
		}
		modules = append(modules, stopline.NewModule(s.ID, line, param))
	}

	return modules, nil
}
