package app

import (
	"context"
	"fmt"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
	"talenthub/internal/domain/profile"
	"talenthub/internal/realtime"
)

// FeedPublisher pushes committed change events to realtime subscribers.
type FeedPublisher interface {
	Publish(ctx context.Context, event realtime.Event) error
}

// Notifier reacts to committed state transitions. Every emission is
// best-effort: a failed notification write or feed publish is logged
// and never surfaced to the transition that triggered it.
type Notifier struct {
	notifications notification.Repository
	candidates    profile.CandidateRepository
	employers     profile.EmployerRepository
	feed          FeedPublisher
	logger        Logger
}

func NewNotifier(notifications notification.Repository, candidates profile.CandidateRepository, employers profile.EmployerRepository, feed FeedPublisher, logger Logger) *Notifier {
	return &Notifier{notifications: notifications, candidates: candidates, employers: employers, feed: feed, logger: logger}
}

func (n *Notifier) ApplicationReceived(ctx context.Context, app *application.Application, j *job.Job) {
	employer, err := n.employers.GetByID(ctx, j.EmployerID)
	if err != nil {
		n.logError(fmt.Sprintf("notification skipped, employer lookup failed job_id=%s: %v", j.ID, err))
	} else {
		n.create(ctx, notification.Notification{
			RecipientID:       employer.UserID,
			Type:              notification.TypeApplicationStatus,
			Title:             "New application for " + j.Title,
			RelatedEntityType: notification.EntityApplication,
			RelatedEntityID:   app.ID,
		})
	}
	n.publish(ctx, "applications", realtime.ActionInsert, app.ID, app)
}

func (n *Notifier) ApplicationStatusChanged(ctx context.Context, app *application.Application) {
	candidate, err := n.candidates.GetByID(ctx, app.CandidateID)
	if err != nil {
		n.logError(fmt.Sprintf("notification skipped, candidate lookup failed application_id=%s: %v", app.ID, err))
	} else {
		n.create(ctx, notification.Notification{
			RecipientID:       candidate.UserID,
			Type:              notification.TypeApplicationStatus,
			Title:             "Your application is now " + string(app.Status),
			RelatedEntityType: notification.EntityApplication,
			RelatedEntityID:   app.ID,
		})
	}
	n.publish(ctx, "applications", realtime.ActionUpdate, app.ID, app)
}

func (n *Notifier) JobStatusChanged(ctx context.Context, j *job.Job) {
	employer, err := n.employers.GetByID(ctx, j.EmployerID)
	if err != nil {
		n.logError(fmt.Sprintf("notification skipped, employer lookup failed job_id=%s: %v", j.ID, err))
	} else {
		n.create(ctx, notification.Notification{
			RecipientID:       employer.UserID,
			Type:              notification.TypeJobStatus,
			Title:             "Job \"" + j.Title + "\" is now " + string(j.Status),
			RelatedEntityType: notification.EntityJob,
			RelatedEntityID:   j.ID,
		})
	}
	n.publish(ctx, "jobs", realtime.ActionUpdate, j.ID, j)
}

func (n *Notifier) create(ctx context.Context, item notification.Notification) {
	created, err := n.notifications.Create(ctx, item)
	if err != nil {
		n.logError(fmt.Sprintf("failed to create notification recipient_id=%s type=%s: %v", item.RecipientID, item.Type, err))
		return
	}
	if n.feed == nil {
		return
	}
	event := realtime.Event{
		Table:       "notifications",
		Action:      realtime.ActionInsert,
		EntityID:    created.ID.String(),
		RecipientID: created.RecipientID.String(),
		At:          time.Now().UTC(),
		Payload:     created,
	}
	if err := n.feed.Publish(ctx, event); err != nil {
		n.logError(fmt.Sprintf("failed to publish notification event notification_id=%s: %v", created.ID, err))
	}
}

func (n *Notifier) publish(ctx context.Context, table, action string, entityID common.UUID, payload any) {
	if n.feed == nil {
		return
	}
	event := realtime.Event{
		Table:    table,
		Action:   action,
		EntityID: entityID.String(),
		At:       time.Now().UTC(),
		Payload:  payload,
	}
	if err := n.feed.Publish(ctx, event); err != nil {
		n.logError(fmt.Sprintf("failed to publish change event table=%s entity_id=%s: %v", table, entityID, err))
	}
}

func (n *Notifier) logError(msg string) {
	if n.logger == nil {
		return
	}
	n.logger.Error(msg)
}
