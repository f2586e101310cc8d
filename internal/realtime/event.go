package realtime

import "time"

// Event is one committed change, as delivered to change-feed
// subscribers. Subscribers filter on Table and EntityID.
type Event struct {
	Table    string    `json:"table"`
	Action   string    `json:"action"`
	EntityID string    `json:"entity_id"`
	// RecipientID is set on notification events so subscribers only
	// ever see their own rows.
	RecipientID string    `json:"recipient_id,omitempty"`
	At          time.Time `json:"at"`
	Payload     any       `json:"payload,omitempty"`
}

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
)
