package matches

import (
	"context"
	"fmt"
	"sync"

	"pelada-manager/internal/domain"
	"pelada-manager/pkg/errors"
	"pelada-manager/pkg/logger"

	"go.uber.org/zap"
)

// Backend is the slice of the API the match engine drives
type Backend interface {
	GetDashboardData(ctx context.Context, peladaID int64) (*domain.DashboardData, error)
	UpdateMatchScore(ctx context.Context, matchID int64, home, away int, status domain.MatchStatus) error
	CreateMatchEvent(ctx context.Context, matchID, playerID int64, eventType domain.MatchEventType) (*domain.MatchEvent, error)
	DeleteMatchEvent(ctx context.Context, matchID, eventID int64) error
	ReplaceLineupPlayer(ctx context.Context, matchID, teamID, outPlayerID, inPlayerID int64) error
	FinishMatch(ctx context.Context, matchID int64) error
	ClosePelada(ctx context.Context, peladaID int64) error
}

// ConfirmFunc asks the operator to approve an irreversible transition.
// Returning false aborts the operation before any backend call.
type ConfirmFunc func(prompt string) bool

// Side selects which team of a match a score change applies to
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// ErrDeclined is returned when the operator rejects a confirmation prompt
var ErrDeclined = fmt.Errorf("operation declined by operator")

// Engine maintains a pelada's match list, lineups and event log, and
// orchestrates score adjustments. A per-match in-flight flag prevents
// duplicate concurrent score submissions for the same match; different
// matches update independently.
type Engine struct {
	backend  Backend
	logger   *logger.Logger
	confirm  ConfirmFunc
	peladaID int64

	mu        sync.Mutex
	data      *domain.DashboardData
	adjusting map[int64]bool
}

// NewEngine creates a match engine for one pelada
func NewEngine(backend Backend, log *logger.Logger, confirm ConfirmFunc, peladaID int64) *Engine {
	return &Engine{
		backend:   backend,
		logger:    log,
		confirm:   confirm,
		peladaID:  peladaID,
		adjusting: make(map[int64]bool),
	}
}

// Refresh replaces the engine state with the backend's current view
func (e *Engine) Refresh(ctx context.Context) error {
	data, err := e.backend.GetDashboardData(ctx, e.peladaID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.data = data
	e.mu.Unlock()
	return nil
}

// Data returns a copy of the last fetched dashboard snapshot, or nil before
// the first refresh. The matches and event log are copied so a held snapshot
// never observes the engine's in-place score updates.
func (e *Engine) Data() *domain.DashboardData {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data == nil {
		return nil
	}
	data := *e.data
	data.Matches = append([]domain.Match(nil), e.data.Matches...)
	data.MatchEvents = append([]domain.MatchEvent(nil), e.data.MatchEvents...)
	return &data
}

// AdjustScore changes one side's score by delta. The operation is rejected
// without any state change when it would drive either score negative or when
// a score update for the same match is already in flight. The match status
// is derived as running while the total is positive and scheduled at 0-0; a
// finished match is never downgraded. The new score is persisted in a single
// call and only applied locally after the backend confirmed it.
func (e *Engine) AdjustScore(ctx context.Context, matchID int64, side Side, delta int) error {
	e.mu.Lock()
	if e.adjusting[matchID] {
		e.mu.Unlock()
		return errors.NewValidationError("a score update for this match is already in progress", nil)
	}

	match := e.findMatchLocked(matchID)
	if match == nil {
		e.mu.Unlock()
		return errors.NewNotFoundError("match not found")
	}

	home, away := match.HomeScore, match.AwayScore
	switch side {
	case SideHome:
		home += delta
	case SideAway:
		away += delta
	default:
		e.mu.Unlock()
		return errors.NewValidationError("unknown match side", nil)
	}

	if home < 0 || away < 0 {
		e.mu.Unlock()
		return errors.NewValidationError("score cannot go below zero", nil)
	}

	status := match.Status
	if status != domain.MatchStatusFinished {
		if home+away > 0 {
			status = domain.MatchStatusRunning
		} else {
			status = domain.MatchStatusScheduled
		}
	}

	e.adjusting[matchID] = true
	e.mu.Unlock()

	err := e.backend.UpdateMatchScore(ctx, matchID, home, away, status)

	e.mu.Lock()
	delete(e.adjusting, matchID)
	if err == nil {
		if m := e.findMatchLocked(matchID); m != nil {
			m.HomeScore = home
			m.AwayScore = away
			m.Status = status
		}
	}
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to update match score: %w", err)
	}
	return nil
}

// RecordGoal appends a goal (or own-goal) event and then applies the score
// delta for the benefiting side. The two writes are separate backend calls
// made in sequence: when the event succeeds but the score update fails, the
// event log and the score diverge until corrected manually, and the returned
// error says so.
func (e *Engine) RecordGoal(ctx context.Context, matchID, playerID int64, side Side, ownGoal bool) error {
	eventType := domain.EventGoal
	if ownGoal {
		eventType = domain.EventOwnGoal
	}

	event, err := e.backend.CreateMatchEvent(ctx, matchID, playerID, eventType)
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", eventType, err)
	}

	e.appendEvent(event)

	if err := e.AdjustScore(ctx, matchID, side, 1); err != nil {
		e.logger.Logger.Error("score_update_failed_after_event",
			zap.Int64("match_id", matchID),
			zap.Int64("event_id", event.ID),
			zap.Error(err))
		return fmt.Errorf("%s event recorded but score was not updated, manual correction needed: %w", eventType, err)
	}
	return nil
}

// RecordAssist appends an assist event; assists carry no score delta
func (e *Engine) RecordAssist(ctx context.Context, matchID, playerID int64) error {
	event, err := e.backend.CreateMatchEvent(ctx, matchID, playerID, domain.EventAssist)
	if err != nil {
		return fmt.Errorf("failed to record assist event: %w", err)
	}
	e.appendEvent(event)
	return nil
}

// RemoveEvent deletes an event-log row and refetches the dashboard
func (e *Engine) RemoveEvent(ctx context.Context, matchID, eventID int64) error {
	if err := e.backend.DeleteMatchEvent(ctx, matchID, eventID); err != nil {
		return err
	}
	return e.Refresh(ctx)
}

// ReplaceLineupPlayer substitutes inPlayerID for outPlayerID on a match's
// team in a single call, then refetches the full dashboard rather than
// patching the lineup map locally, so lineups and stats cannot diverge.
func (e *Engine) ReplaceLineupPlayer(ctx context.Context, matchID, teamID, outPlayerID, inPlayerID int64) error {
	if err := e.backend.ReplaceLineupPlayer(ctx, matchID, teamID, outPlayerID, inPlayerID); err != nil {
		return fmt.Errorf("failed to replace lineup player: %w", err)
	}
	return e.Refresh(ctx)
}

// FinishMatch irreversibly ends a match after operator confirmation
func (e *Engine) FinishMatch(ctx context.Context, matchID int64) error {
	if !e.confirm(fmt.Sprintf("End match %d? This cannot be undone.", matchID)) {
		return ErrDeclined
	}
	if err := e.backend.FinishMatch(ctx, matchID); err != nil {
		return err
	}
	return e.Refresh(ctx)
}

// ClosePelada irreversibly closes the session after operator confirmation
func (e *Engine) ClosePelada(ctx context.Context) error {
	if !e.confirm("Close this pelada? This cannot be undone.") {
		return ErrDeclined
	}
	return e.backend.ClosePelada(ctx, e.peladaID)
}

// Standings derives the current standings from the last fetched snapshot
func (e *Engine) Standings() []domain.TeamStanding {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data == nil {
		return nil
	}
	return ComputeStandings(e.data.Matches, e.data.Teams)
}

// PlayerStats derives player statistics from the last fetched snapshot,
// ordered according to state
func (e *Engine) PlayerStats(state SortState) []domain.PlayerStats {
	e.mu.Lock()
	data := e.data
	e.mu.Unlock()
	if data == nil {
		return nil
	}

	stats := ComputePlayerStats(data.PlayerStats, data.MatchEvents, data.Matches, data.MatchLineups, data.Players)
	SortPlayerStats(stats, state)
	return stats
}

func (e *Engine) appendEvent(event *domain.MatchEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data != nil {
		e.data.MatchEvents = append(e.data.MatchEvents, *event)
	}
}

func (e *Engine) findMatchLocked(matchID int64) *domain.Match {
	if e.data == nil {
		return nil
	}
	for i := range e.data.Matches {
		if e.data.Matches[i].ID == matchID {
			return &e.data.Matches[i]
		}
	}
	return nil
}
