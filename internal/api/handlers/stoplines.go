package handlers

import (
	"net/http"

	"stopline-planner-service/internal/api/dto"
	"stopline-planner-service/internal/services"
)

type StopLineHandler struct {
	Planner *services.Planner
}

// List returns the registered stop lines with their configuration and
// current lifecycle state.
func (h *StopLineHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	modules := h.Planner.Modules()
	res := dto.ListStopLineResponse{StopLines: make([]dto.StopLineResponse, 0, len(modules))}
	for _, m := range modules {
		line := m.Line()
		param := m.Param()
		res.StopLines = append(res.StopLines, dto.StopLineResponse{
			ID:                     m.ID(),
			P1:                     fromDomainPoint(line.P1),
			P2:                     fromDomainPoint(line.P2),
			StopMargin:             param.StopMargin,
			HoldStopMarginDistance: param.HoldStopMarginDistance,
			StopDurationSec:        param.StopDuration.Seconds(),
			StopLineExtendLength:   param.StopLineExtendLength,
			State:                  m.State().String(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
