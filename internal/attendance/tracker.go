package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pelada-manager/internal/domain"
	"pelada-manager/pkg/errors"
	"pelada-manager/pkg/logger"

	"go.uber.org/zap"
)

// Backend is the slice of the API the attendance tracker drives
type Backend interface {
	GetPelada(ctx context.Context, peladaID int64) (*domain.Pelada, error)
	GetAttendance(ctx context.Context, peladaID int64) ([]domain.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, peladaID, playerID int64, status domain.AttendanceStatus) error
}

// Tracker maintains tri-state attendance for a pelada with independent
// per-player in-flight markers: updates to different players run
// concurrently, while a second update for the same player is rejected until
// the first settles.
type Tracker struct {
	backend  Backend
	logger   *logger.Logger
	peladaID int64

	mu       sync.Mutex
	pelada   *domain.Pelada
	records  map[int64]domain.AttendanceRecord
	updating map[int64]struct{}
}

// NewTracker creates an attendance tracker for one pelada
func NewTracker(backend Backend, log *logger.Logger, peladaID int64) *Tracker {
	return &Tracker{
		backend:  backend,
		logger:   log,
		peladaID: peladaID,
		records:  make(map[int64]domain.AttendanceRecord),
		updating: make(map[int64]struct{}),
	}
}

// Refresh replaces the tracker state with the backend's current view,
// including the pelada itself so phase transitions are detected
func (t *Tracker) Refresh(ctx context.Context) error {
	pelada, err := t.backend.GetPelada(ctx, t.peladaID)
	if err != nil {
		return err
	}
	records, err := t.backend.GetAttendance(ctx, t.peladaID)
	if err != nil {
		return err
	}

	byPlayer := make(map[int64]domain.AttendanceRecord, len(records))
	for _, r := range records {
		byPlayer[r.PlayerID] = r
	}

	t.mu.Lock()
	t.pelada = pelada
	t.records = byPlayer
	t.mu.Unlock()
	return nil
}

// SetStatus updates one player's attendance. Rejected when an update for the
// same player is already in flight; other players are unaffected.
func (t *Tracker) SetStatus(ctx context.Context, playerID int64, status domain.AttendanceStatus) error {
	switch status {
	case domain.AttendancePending, domain.AttendanceConfirmed, domain.AttendanceDeclined:
	default:
		return errors.NewValidationError("unknown attendance status", nil)
	}

	t.mu.Lock()
	if _, busy := t.updating[playerID]; busy {
		t.mu.Unlock()
		return errors.NewValidationError("an attendance update for this player is already in progress", nil)
	}
	t.updating[playerID] = struct{}{}
	t.mu.Unlock()

	err := t.backend.UpdateAttendance(ctx, t.peladaID, playerID, status)

	t.mu.Lock()
	delete(t.updating, playerID)
	if err == nil {
		record := t.records[playerID]
		record.PeladaID = t.peladaID
		record.PlayerID = playerID
		record.Status = status
		t.records[playerID] = record
	}
	t.mu.Unlock()

	if err != nil {
		t.logger.Logger.Warn("attendance_update_failed",
			zap.Int64("player_id", playerID),
			zap.Error(err))
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return nil
}

// Updating reports whether an update for the player is in flight
func (t *Tracker) Updating(playerID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.updating[playerID]
	return busy
}

// Counts partitions the tracked players by status. The three buckets always
// sum to the number of tracked players.
func (t *Tracker) Counts() domain.AttendanceCounts {
	t.mu.Lock()
	defer t.mu.Unlock()

	var counts domain.AttendanceCounts
	for _, r := range t.records {
		switch r.Status {
		case domain.AttendanceConfirmed:
			counts.Confirmed++
		case domain.AttendanceDeclined:
			counts.Declined++
		default:
			counts.Pending++
		}
	}
	return counts
}

// Records returns the tracked records ordered by player ID
func (t *Tracker) Records() []domain.AttendanceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := make([]domain.AttendanceRecord, 0, len(t.records))
	for _, r := range t.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PlayerID < records[j].PlayerID })
	return records
}

// LeftAttendancePhase reports whether the pelada has moved past the
// attendance phase, signalling callers to navigate away from the attendance
// view. Detected on refetch; the transition itself is server-driven.
func (t *Tracker) LeftAttendancePhase() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pelada == nil {
		return false
	}
	switch t.pelada.Status {
	case domain.PeladaStatusOpen, domain.PeladaStatusAttendance:
		return false
	}
	return true
}
