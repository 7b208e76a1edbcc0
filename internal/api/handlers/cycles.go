package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"stopline-planner-service/internal/api/dto"
	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/platform/obs"
	"stopline-planner-service/internal/ports"
	"stopline-planner-service/internal/services"
)

type CycleHandler struct {
	Planner *services.Planner
	Clock   ports.Clock

	// The planner is single-threaded by contract: one in-flight cycle
	// at a time.
	mu sync.Mutex
}

// Run drives one planning cycle from a posted trajectory and vehicle
// observation, returning the mutated trajectory and per-module
// reports.
func (h *CycleHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CycleRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Points) == 0 {
		writeError(w, r, http.StatusBadRequest, "points are required")
		return
	}

	at := h.Clock.Now()
	if req.At != nil {
		at = *req.At
	}

	in := services.CycleInput{
		Points:      toDomainPoints(req.Points),
		EgoPose:     toDomainPose(req.EgoPose),
		EgoVelocity: req.EgoVelocity,
		At:          at,
	}

	done := obs.Time(r.Context(), "run_cycle")
	h.mu.Lock()
	out, err := h.Planner.RunCycle(r.Context(), in)
	h.mu.Unlock()
	done(&err)

	if err != nil {
		log.Printf("run cycle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toCycleResponse(out))
}

func toDomainPoint(p dto.Point) domain.Point {
	return domain.Point{X: p.X, Y: p.Y, Z: p.Z}
}

func toDomainPose(p dto.Pose) domain.Pose {
	return domain.Pose{Position: toDomainPoint(p.Position), Yaw: p.Yaw}
}

func toDomainPoints(points []dto.TrajectoryPoint) []domain.TrajectoryPoint {
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

func fromDomainPoint(p domain.Point) dto.Point {
	return dto.Point{X: p.X, Y: p.Y, Z: p.Z}
}

func fromDomainPose(p domain.Pose) dto.Pose {
	return dto.Pose{Position: fromDomainPoint(p.Position), Yaw: p.Yaw}
}

func toCycleResponse(out services.CycleOutput) dto.CycleResponse {
	res := dto.CycleResponse{
		Points:  make([]dto.TrajectoryPoint, 0, len(out.Points)),
		Reports: make([]dto.ModuleReport, 0, len(out.Reports)),
	}

	for _, p := range out.Points {
		res.Points = append(res.Points, dto.TrajectoryPoint{
			Pose:                 fromDomainPose(p.Pose),
			LongitudinalVelocity: p.LongitudinalVelocity,
			LaneIDs:              p.LaneIDs,
		})
	}

	for _, r := range out.Reports {
		report := dto.ModuleReport{
			ModuleID: r.ModuleID,
			State:    r.State.String(),
			Debug: dto.DebugData{
				FrontOverhang: r.Debug.FrontOverhang,
			},
		}
		if r.Debug.StopPose != nil {
			pose := fromDomainPose(*r.Debug.StopPose)
			report.Debug.StopPose = &pose
		}
		if r.VelocityFactor != nil {
			report.VelocityFactor = &dto.VelocityFactor{
				DistanceToStop: r.VelocityFactor.DistanceToStop,
				Status:         string(r.VelocityFactor.Status),
			}
		}
		if r.StopReason != nil {
			refs := make([]dto.Point, 0, len(r.StopReason.ReferencePoints))
			for _, ref := range r.StopReason.ReferencePoints {
				refs = append(refs, fromDomainPoint(ref))
			}
			report.StopReason = &dto.StopReason{
				StopPose:        fromDomainPose(r.StopReason.StopPose),
				ReferencePoints: refs,
			}
		}
		res.Reports = append(res.Reports, report)
	}

	return res
}
