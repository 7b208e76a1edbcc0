package dto

import "time"

type StopEventResponse struct {
	ModuleID       int64     `json:"module_id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	DistanceToStop float64   `json:"distance_to_stop"`
	At             time.Time `json:"at"`
}

type ListStopEventResponse struct {
	Events []StopEventResponse `json:"events"`
}
