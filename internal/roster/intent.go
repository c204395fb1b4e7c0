package roster

import (
	"encoding/json"

	"pelada-manager/pkg/errors"
)

// MoveIntent is the typed transfer payload for a drag-and-drop reassignment.
// A nil team ID means the bench: bench->team, team->bench and team->team are
// all expressed by the same shape.
type MoveIntent struct {
	PlayerID     int64  `json:"player_id"`
	SourceTeamID *int64 `json:"source_team_id,omitempty"`
	TargetTeamID *int64 `json:"target_team_id,omitempty"`
}

// Validate checks the intent's invariants before it is acted on
func (m MoveIntent) Validate() error {
	if m.PlayerID <= 0 {
		return errors.NewValidationError("move intent requires a player id", nil)
	}
	if m.SourceTeamID != nil && *m.SourceTeamID <= 0 {
		return errors.NewValidationError("move intent source team id is invalid", nil)
	}
	if m.TargetTeamID != nil && *m.TargetTeamID <= 0 {
		return errors.NewValidationError("move intent target team id is invalid", nil)
	}
	return nil
}

// NoOp reports whether source and target are the same location
func (m MoveIntent) NoOp() bool {
	if m.SourceTeamID == nil && m.TargetTeamID == nil {
		return true
	}
	if m.SourceTeamID != nil && m.TargetTeamID != nil {
		return *m.SourceTeamID == *m.TargetTeamID
	}
	return false
}

// Encode serializes the intent for a transfer channel
func (m MoveIntent) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMoveIntent decodes and validates an intent received from a transfer
// channel
func ParseMoveIntent(payload []byte) (MoveIntent, error) {
	var intent MoveIntent
	if err := json.Unmarshal(payload, &intent); err != nil {
		return MoveIntent{}, errors.NewValidationError("malformed move intent payload", map[string]interface{}{
			"payload": string(payload),
		})
	}
	if err := intent.Validate(); err != nil {
		return MoveIntent{}, err
	}
	return intent, nil
}
