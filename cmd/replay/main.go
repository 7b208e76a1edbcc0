package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stopline-planner-service/internal/adapters/publish"
	"stopline-planner-service/internal/config"
	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/ports"
	"stopline-planner-service/internal/services"
)

// replay drives a planner offline through a recorded cycle log and
// prints every lifecycle transition plus the final state of each stop
// line. Cycles carry explicit timestamps, so a replay of the same log
// always produces the same transitions.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logPath := config.Get("REPLAY_PATH", "data/replay.json")
	if len(os.Args) > 1 {
		logPath = os.Args[1]
	}

	rec, err := loadRecording(logPath)
	if err != nil {
		log.Fatal(err)
	}

	defaults := domain.PlannerParam{
		StopMargin:             config.GetFloat("STOP_MARGIN", 0.0),
		HoldStopMarginDistance: config.GetFloat("HOLD_STOP_MARGIN_DISTANCE", 1.0),
		StopDuration:           config.GetDurationSec("STOP_DURATION_SEC", 2*time.Second),
		StopLineExtendLength:   config.GetFloat("STOP_LINE_EXTEND_LENGTH", 5.0),
	}

	modules, err := services.LoadStopLineModules(rec.StopLinesPath, defaults)
	if err != nil {
		log.Fatal(err)
	}

	detector := services.NewStoppedDetector(
		config.GetFloat("STOPPED_VELOCITY_THRESHOLD", 0.01),
		config.GetDurationSec("STOPPED_TIME_WINDOW_SEC", 500*time.Millisecond),
	)

	recorder := &printRecorder{}
	planner := services.NewPlanner(
		config.GetFloat("FRONT_OVERHANG", 1.0),
		detector,
		recorder,
		publish.NopFactorPublisher{},
	)
	for _, m := range modules {
		planner.Register(m)
	}

	ctx := context.Background()
	for i, c := range rec.Cycles {
		in := services.CycleInput{
			Points:      toDomainPoints(c.Points),
			EgoPose:     toDomainPose(c.EgoPose),
			EgoVelocity: c.EgoVelocity,
			At:          c.At,
		}
		if _, err := planner.RunCycle(ctx, in); err != nil {
			log.Fatalf("replay: cycle %d: %v", i, err)
		}
	}

	fmt.Printf("replayed cycles=%d transitions=%d\n", len(rec.Cycles), recorder.count)
	for _, m := range planner.Modules() {
		fmt.Printf("stop line id=%d state=%s\n", m.ID(), m.State())
	}
}

// printRecorder satisfies ports.StopEventRecorder by writing
// transitions to stdout instead of a database.
type printRecorder struct {
	count int
}

func (r *printRecorder) Record(_ context.Context, ev domain.StopEvent) error {
	r.count++
	fmt.Printf(
		"%s module_id=%d %s->%s distance=%.2fm\n",
		ev.At.Format(time.RFC3339Nano), ev.ModuleID, ev.From, ev.To, ev.DistanceToStop,
	)
	return nil
}

func (r *printRecorder) List(context.Context, int64) ([]domain.StopEvent, error) {
	return nil, nil
}

var _ ports.StopEventRecorder = (*printRecorder)(nil)

type pointRec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type poseRec struct {
	Position pointRec `json:"position"`
	Yaw      float64  `json:"yaw"`
}

type trajectoryPointRec struct {
	Pose                 poseRec `json:"pose"`
	LongitudinalVelocity float64 `json:"longitudinal_velocity"`
	LaneIDs              []int64 `json:"lane_ids"`
}

type cycleRec struct {
	At          time.Time            `json:"at"`
	EgoPose     poseRec              `json:"ego_pose"`
	EgoVelocity float64              `json:"ego_velocity"`
	Points      []trajectoryPointRec `json:"points"`
}

type recording struct {
	StopLinesPath string     `json:"stop_lines_path"`
	Cycles        []cycleRec `json:"cycles"`
}

func loadRecording(path string) (*recording, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load recording: read %q: %w", path, err)
	}

	var rec recording
	if err := json.Unmarshal(bytes, &rec); err != nil {
		return nil, fmt.Errorf("load recording: parse json: %w", err)
	}

	if rec.StopLinesPath == "" {
		return nil, fmt.Errorf("load recording: stop_lines_path is required")
	}

	return &rec, nil
}

func toDomainPoint(p pointRec) domain.Point {
	return domain.Point{X: p.X, Y: p.Y, Z: p.Z}
}

func toDomainPose(p poseRec) domain.Pose {
	return domain.Pose{Position: toDomainPoint(p.Position), Yaw: p.Yaw}
}

func toDomainPoints(points []trajectoryPointRec) []domain.TrajectoryPoint {
	out := make([]domain.TrajectoryPoint, 0, len(points))
	for _, p := range points {
		out = append(out, domain.TrajectoryPoint{
			Pose:                 toDomainPose(p.Pose),
			LongitudinalVelocity: p.LongitudinalVelocity,
			LaneIDs:              p.LaneIDs,
		})
	}
	return out
}
