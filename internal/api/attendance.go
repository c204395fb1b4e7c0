package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// GetAttendance returns per-player attendance for a pelada
func (c *Client) GetAttendance(ctx context.Context, peladaID int64) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	if err := c.Get(ctx, pathf("/api/peladas/%d/attendance", peladaID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateAttendance sets one player's attendance status for a pelada
func (c *Client) UpdateAttendance(ctx context.Context, peladaID, playerID int64, status domain.AttendanceStatus) error {
	req := map[string]domain.AttendanceStatus{"status": status}
	return c.Put(ctx, pathf("/api/peladas/%d/attendance/%d", peladaID, playerID), req, nil)
}
