package notification

import (
	"time"

	"talenthub/internal/common"
)

type Type string

const (
	TypeApplicationStatus  Type = "application_status"
	TypeJobStatus          Type = "job_status"
	TypeInterviewScheduled Type = "interview_scheduled"
	TypeGeneral            Type = "general"
)

type EntityType string

const (
	EntityJob         EntityType = "job"
	EntityApplication EntityType = "application"
	EntityInterview   EntityType = "interview"
)

// Notification is immutable once created except for the read flag.
type Notification struct {
	ID                common.UUID `json:"id"`
	RecipientID       common.UUID `json:"recipient_id"`
	Type              Type        `json:"type"`
	Title             string      `json:"title"`
	Body              string      `json:"body,omitempty"`
	RelatedEntityType EntityType  `json:"related_entity_type"`
	RelatedEntityID   common.UUID `json:"related_entity_id"`
	Read              bool        `json:"read"`
	CreatedAt         time.Time   `json:"created_at"`
}
