package dto

import "time"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Pose struct {
	Position Point   `json:"position"`
	Yaw      float64 `json:"yaw"`
}

type TrajectoryPoint struct {
	Pose                 Pose    `json:"pose"`
	LongitudinalVelocity float64 `json:"longitudinal_velocity"`
	LaneIDs              []int64 `json:"lane_ids,omitempty"`
}

type CycleRequest struct {
	Points      []TrajectoryPoint `json:"points"`
	EgoPose     Pose              `json:"ego_pose"`
	EgoVelocity float64           `json:"ego_velocity"`
	At          *time.Time        `json:"at"`
}

type VelocityFactor struct {
	DistanceToStop float64 `json:"distance_to_stop"`
	Status         string  `json:"status"`
}

type StopReason struct {
	StopPose        Pose    `json:"stop_pose"`
	ReferencePoints []Point `json:"reference_points"`
}

type DebugData struct {
	FrontOverhang float64 `json:"front_overhang"`
	StopPose      *Pose   `json:"stop_pose,omitempty"`
}

type ModuleReport struct {
	ModuleID       int64           `json:"module_id"`
	State          string          `json:"state"`
	VelocityFactor *VelocityFactor `json:"velocity_factor,omitempty"`
	StopReason     *StopReason     `json:"stop_reason,omitempty"`
	Debug          DebugData       `json:"debug"`
}

type CycleResponse struct {
	Points  []TrajectoryPoint `json:"points"`
	Reports []ModuleReport    `json:"reports"`
}
