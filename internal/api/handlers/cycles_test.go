package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stopline-planner-service/internal/api/dto"
	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/services"
	"stopline-planner-service/internal/stopline"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newTestHandler() *CycleHandler {
	planner := services.NewPlanner(
		1.0,
		services.NewStoppedDetector(0.01, 0),
		nil, // no recorder
		nil, // no publisher
	)
	planner.Register(stopline.NewModule(1,
		domain.StopLine{P1: domain.Point{X: 50, Y: -5}, P2: domain.Point{X: 50, Y: 5}},
		domain.PlannerParam{
			StopMargin:             0.5,
			HoldStopMarginDistance: 1.0,
			StopDuration:           2 * time.Second,
			StopLineExtendLength:   5.0,
		},
	))

	return &CycleHandler{Planner: planner, Clock: fixedClock{at: time.Unix(0, 0)}}
}

func cycleBody(t *testing.T) string {
	t.Helper()

	req := dto.CycleRequest{
		EgoPose:     dto.Pose{Position: dto.Point{X: 10}},
		EgoVelocity: 10,
	}
	for i := 0; i <= 100; i++ {
		req.Points = append(req.Points, dto.TrajectoryPoint{
			Pose:                 dto.Pose{Position: dto.Point{X: float64(i)}},
			LongitudinalVelocity: 10,
		})
	}

	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestCycleHandlerRun(t *testing.T) {
	h := newTestHandler()

	r := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(cycleBody(t)))
	w := httptest.NewRecorder()
	h.Run(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var res dto.CycleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(res.Reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(res.Reports))
	}
	report := res.Reports[0]
	if report.State != "APPROACH" {
		t.Fatalf("state = %q, want APPROACH", report.State)
	}
	if report.VelocityFactor == nil || report.VelocityFactor.Status != "APPROACHING" {
		t.Fatalf("velocity factor = %+v", report.VelocityFactor)
	}

	// Stop point at 48.5: sample 49 onward zeroed in the response.
	if res.Points[48].LongitudinalVelocity != 10 || res.Points[49].LongitudinalVelocity != 0 {
		t.Fatalf("velocities around the stop point = %g/%g, want 10/0",
			res.Points[48].LongitudinalVelocity, res.Points[49].LongitudinalVelocity)
	}
}

func TestCycleHandlerRejectsBadInput(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"unknown field", `{"points": [], "bogus": 1}`},
		{"trailing object", `{"points": []} {}`},
		{"missing points", `{"ego_velocity": 1}`},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		h.Run(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, w.Code)
		}
	}
}

func TestCycleHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	r := httptest.NewRequest(http.MethodGet, "/cycles", nil)
	w := httptest.NewRecorder()
	h.Run(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}
