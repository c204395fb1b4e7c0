package roster

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"pelada-manager/internal/domain"
	"pelada-manager/pkg/errors"
	"pelada-manager/pkg/logger"

	"go.uber.org/zap"
)

// Backend is the slice of the API the roster engine drives
type Backend interface {
	GetPeladaDetails(ctx context.Context, peladaID int64) (*domain.PeladaDetails, error)
	AddTeamPlayer(ctx context.Context, teamID, playerID int64) error
	RemoveTeamPlayer(ctx context.Context, teamID, playerID int64) error
	RandomizeTeams(ctx context.Context, peladaID int64, playerIDs []int64, playersPerTeam int) error
	GetNormalizedScores(ctx context.Context, playerIDs []int64) (map[int64]float64, error)
}

// Engine maintains the partition of a pelada's player pool into bench and
// teams, and derives per-team averages and the balance percentage. State is
// never updated speculatively: every mutation round-trips through the
// backend and a full refetch, so the engine only ever mirrors confirmed
// server state.
type Engine struct {
	backend  Backend
	logger   *logger.Logger
	peladaID int64

	mu       sync.RWMutex
	pelada   domain.Pelada
	teams    []domain.TeamWithPlayers
	bench    []domain.Player
	scores   map[int64]float64
	scoreIDs []int64 // sorted ID set of the last normalized-score fetch
}

// NewEngine creates a roster engine for one pelada
func NewEngine(backend Backend, log *logger.Logger, peladaID int64) *Engine {
	return &Engine{
		backend:  backend,
		logger:   log,
		peladaID: peladaID,
		scores:   make(map[int64]float64),
	}
}

// Refresh replaces the engine state with the backend's current view and
// re-requests normalized scores when the assembled player-ID set changed
// since the last fetch.
func (e *Engine) Refresh(ctx context.Context) error {
	details, err := e.backend.GetPeladaDetails(ctx, e.peladaID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.pelada = details.Pelada
	e.teams = details.Teams
	e.bench = details.AvailablePlayers
	if details.Scores != nil {
		e.scores = details.Scores
	}
	ids := e.assembledIDsLocked()
	changed := !equalIDs(ids, e.scoreIDs)
	e.mu.Unlock()

	if !changed {
		return nil
	}
	return e.refreshScores(ctx, ids)
}

// refreshScores batch-fetches normalized scores for exactly the given ID set
func (e *Engine) refreshScores(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		e.mu.Lock()
		e.scores = make(map[int64]float64)
		e.scoreIDs = nil
		e.mu.Unlock()
		return nil
	}

	scores, err := e.backend.GetNormalizedScores(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to refresh normalized scores: %w", err)
	}

	e.mu.Lock()
	e.scores = scores
	e.scoreIDs = ids
	e.mu.Unlock()

	e.logger.Logger.Debug("normalized_scores_refreshed", zap.Int("players", len(ids)))
	return nil
}

// Move executes a validated move intent: remove from the source location,
// add to the target, then refetch. A move whose source equals its target is
// a no-op. On partial failure the refetch still runs so the engine reflects
// whatever the backend actually committed.
func (e *Engine) Move(ctx context.Context, intent MoveIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	if intent.NoOp() {
		return nil
	}
	if err := e.checkLocation(intent); err != nil {
		return err
	}

	moveErr := e.execMove(ctx, intent)

	if err := e.Refresh(ctx); err != nil {
		if moveErr != nil {
			return fmt.Errorf("move failed (%w) and refetch failed: %v", moveErr, err)
		}
		return err
	}
	return moveErr
}

func (e *Engine) execMove(ctx context.Context, intent MoveIntent) error {
	// Remove before add keeps the player in at most one team at all times
	if intent.SourceTeamID != nil {
		if err := e.backend.RemoveTeamPlayer(ctx, *intent.SourceTeamID, intent.PlayerID); err != nil {
			return fmt.Errorf("failed to remove player from team: %w", err)
		}
	}
	if intent.TargetTeamID != nil {
		if err := e.backend.AddTeamPlayer(ctx, *intent.TargetTeamID, intent.PlayerID); err != nil {
			return fmt.Errorf("failed to add player to team: %w", err)
		}
	}
	return nil
}

// checkLocation verifies the player is actually where the intent claims
func (e *Engine) checkLocation(intent MoveIntent) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if intent.SourceTeamID == nil {
		for _, p := range e.bench {
			if p.ID == intent.PlayerID {
				return nil
			}
		}
		return errors.NewValidationError("player is not on the bench", nil)
	}

	for _, t := range e.teams {
		if t.ID != *intent.SourceTeamID {
			continue
		}
		for _, p := range t.Players {
			if p.ID == intent.PlayerID {
				return nil
			}
		}
		return errors.NewValidationError("player is not on the source team", nil)
	}
	return errors.NewNotFoundError("source team not found")
}

// TeamAverage returns the average skill score for a team: the normalized
// score when the backend provided one, else the player's static grade;
// players with neither are excluded. Zero when no player counts.
func (e *Engine) TeamAverage(teamID int64) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, t := range e.teams {
		if t.ID == teamID {
			return e.averageLocked(t.Players)
		}
	}
	return 0
}

func (e *Engine) averageLocked(players []domain.Player) float64 {
	var sum float64
	var count int
	for _, p := range players {
		if score, ok := e.scores[p.ID]; ok {
			sum += score
			count++
		} else if p.Grade != nil {
			sum += *p.Grade
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// BalancePercent measures how close the weakest team is to the strongest:
// round(min/max*100). Defined as 100 when at most one team exists or no team
// has a scored player, so degenerate states read as fully balanced instead
// of dividing by zero.
func (e *Engine) BalancePercent() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.teams) <= 1 {
		return 100
	}

	minAvg := math.MaxFloat64
	maxAvg := 0.0
	for _, t := range e.teams {
		avg := e.averageLocked(t.Players)
		if avg < minAvg {
			minAvg = avg
		}
		if avg > maxAvg {
			maxAvg = avg
		}
	}
	if maxAvg == 0 {
		return 100
	}
	return int(math.Round(minAvg / maxAvg * 100))
}

// RandomizeInput assembles the backend balancing input: the full ordered
// player-ID pool (bench first, then each team's roster in team order) and
// the pelada's team size.
func (e *Engine) RandomizeInput() ([]int64, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]int64, 0, len(e.bench))
	for _, p := range e.bench {
		ids = append(ids, p.ID)
	}
	for _, t := range e.teams {
		for _, p := range t.Players {
			ids = append(ids, p.ID)
		}
	}
	return ids, e.pelada.PlayersPerTeam
}

// Randomize delegates team balancing to the backend and refetches
func (e *Engine) Randomize(ctx context.Context) error {
	ids, playersPerTeam := e.RandomizeInput()
	if err := e.backend.RandomizeTeams(ctx, e.peladaID, ids, playersPerTeam); err != nil {
		return err
	}
	return e.Refresh(ctx)
}

// Pelada returns the current session snapshot
func (e *Engine) Pelada() domain.Pelada {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pelada
}

// Teams returns a copy of the current team rosters
func (e *Engine) Teams() []domain.TeamWithPlayers {
	e.mu.RLock()
	defer e.mu.RUnlock()

	teams := make([]domain.TeamWithPlayers, len(e.teams))
	for i, t := range e.teams {
		teams[i] = t
		teams[i].Players = append([]domain.Player(nil), t.Players...)
	}
	return teams
}

// Bench returns a copy of the available (unassigned) players
func (e *Engine) Bench() []domain.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Player(nil), e.bench...)
}

// assembledIDsLocked returns the sorted set of all player IDs currently in
// the pool (bench plus every team roster)
func (e *Engine) assembledIDsLocked() []int64 {
	ids := make([]int64, 0, len(e.bench))
	for _, p := range e.bench {
		ids = append(ids, p.ID)
	}
	for _, t := range e.teams {
		for _, p := range t.Players {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
