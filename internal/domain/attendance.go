package domain

import "time"

// AttendanceStatus is the tri-state attendance marker for a player in a pelada
type AttendanceStatus string

const (
	AttendancePending   AttendanceStatus = "pending"
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceDeclined  AttendanceStatus = "declined"
)

// AttendanceRecord tracks one player's status for one pelada
type AttendanceRecord struct {
	PeladaID  int64            `json:"pelada_id"`
	PlayerID  int64            `json:"player_id"`
	Status    AttendanceStatus `json:"status"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AttendanceCounts partitions a pelada's players by attendance status
type AttendanceCounts struct {
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
}

// Total returns the number of tracked players
func (c AttendanceCounts) Total() int {
	return c.Confirmed + c.Declined + c.Pending
}
