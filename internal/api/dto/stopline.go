package dto

type StopLineResponse struct {
	ID                     int64   `json:"id"`
	P1                     Point   `json:"p1"`
	P2                     Point   `json:"p2"`
	StopMargin             float64 `json:"stop_margin"`
	HoldStopMarginDistance float64 `json:"hold_stop_margin_distance"`
	StopDurationSec        float64 `json:"stop_duration_sec"`
	StopLineExtendLength   float64 `json:"stop_line_extend_length"`
	State                  string  `json:"state"`
}

type ListStopLineResponse struct {
	StopLines []StopLineResponse `json:"stop_lines"`
}
