package services

import (
	"context"
	"fmt"

	"github.com/amco/vacancies/internal/entities"
	"github.com/amco/vacancies/internal/events"
	"github.com/amco/vacancies/internal/logger"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type historyRepository interface {
	Add(ctx context.Context, entry *entities.ActionHistory) error
}

// AuditLogger appends an ActionHistory row for every create and delete.
// It runs in the publisher's goroutine, after the mutation has been committed.
type AuditLogger struct {
	history historyRepository
}

func NewAuditLogger(history historyRepository, bus EventBus.Bus) (*AuditLogger, error) {
	if history == nil {
		return nil, errors.New("history repository is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	a := &AuditLogger{history: history}

	subscriptions := map[string]any{
		events.JobAddedTopic:             a.onJobAdded,
		events.JobDeletedTopic:           a.onJobDeleted,
		events.ApplicationSubmittedTopic: a.onApplicationSubmitted,
		events.ApplicationDeletedTopic:   a.onApplicationDeleted,
	}
	for topic, handler := range subscriptions {
		if err := bus.Subscribe(topic, handler); err != nil {
			return nil, errors.Wrapf(err, "can't subscribe to %s", topic)
		}
	}
	return a, nil
}

func (a *AuditLogger) LogAction(ctx context.Context, entityType string, entityID uint, action, details string) error {
	return a.history.Add(ctx, &entities.ActionHistory{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	})
}

func (a *AuditLogger) onJobAdded(ctx context.Context, event events.JobAdded) {
	a.logOrReport(ctx, entities.EntityTypeJob, event.Job.ID, entities.ActionAdded,
		fmt.Sprintf("Job '%s' added successfully.", event.Job.Title))
}

func (a *AuditLogger) onJobDeleted(ctx context.Context, event events.JobDeleted) {
	a.logOrReport(ctx, entities.EntityTypeJob, event.Job.ID, entities.ActionDeleted,
		fmt.Sprintf("Job '%s' deleted successfully.", event.Job.Title))
}

func (a *AuditLogger) onApplicationSubmitted(ctx context.Context, event events.ApplicationSubmitted) {
	a.logOrReport(ctx, entities.EntityTypeAppliedJob, event.Application.ID, entities.ActionAdded,
		fmt.Sprintf("Applied job with ID '%d' for job '%d' added successfully.", event.Application.ID, event.Job.ID))
}

func (a *AuditLogger) onApplicationDeleted(ctx context.Context, event events.ApplicationDeleted) {
	a.logOrReport(ctx, entities.EntityTypeAppliedJob, event.Application.ID, entities.ActionDeleted,
		fmt.Sprintf("Applied job with ID '%d' deleted successfully.", event.Application.ID))
}

func (a *AuditLogger) logOrReport(ctx context.Context, entityType string, entityID uint, action, details string) {
	if err := a.LogAction(ctx, entityType, entityID, action, details); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("can't record %s %s %d: %v", action, entityType, entityID, err)
	}
}
