package handlers

import (
	"log"
	"net/http"
	"strconv"

	"stopline-planner-service/internal/api/dto"
	"stopline-planner-service/internal/ports"
)

type EventHandler struct {
	Recorder ports.StopEventRecorder
}

// List returns recorded lifecycle transitions, optionally filtered by
// module_id.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var moduleID int64
	if raw := r.URL.Query().Get("module_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, http.StatusBadRequest, "module_id must be a positive integer")
			return
		}
		moduleID = id
	}

	events, err := h.Recorder.List(r.Context(), moduleID)
	if err != nil {
		log.Printf("list stop events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopEventResponse{Events: make([]dto.StopEventResponse, 0, len(events))}
	for _, ev := range events {
		res.Events = append(res.Events, dto.StopEventResponse{
			ModuleID:       ev.ModuleID,
			From:           ev.From.String(),
			To:             ev.To.String(),
			DistanceToStop: ev.DistanceToStop,
			At:             ev.At,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
