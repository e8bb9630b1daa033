package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Shriramtantry/task-manager/internal/logger"
	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/repository"

	"github.com/google/uuid"
)

// Recorder appends audit entries. Recording never fails the caller.
type Recorder interface {
	Record(ctx context.Context, a models.Activity)
}

// Publisher forwards audit entries to an external sink.
type Publisher interface {
	Publish(ctx context.Context, a models.Activity) error
}

type ActivityService struct {
	repo repository.ActivityRepo
	pub  Publisher
	log  *logger.Logger
}

func NewActivityService(repo repository.ActivityRepo, pub Publisher, log *logger.Logger) *ActivityService {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityService{repo: repo, pub: pub, log: log}
}

var errInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// Record stores a and forwards it to the publisher, logging failures.
func (s *ActivityService) Record(ctx context.Context, a models.Activity) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	a.Type = normalizeActivityType(a.Type)

	if err := s.repo.Append(ctx, a); err != nil {
		s.log.Warnw("activity_append_failed", "err", err, "type", a.Type, "user_id", a.UserID)
	}
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, a); err != nil {
		s.log.Warnw("activity_publish_failed", "err", err, "type", a.Type, "id", a.ID)
	}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeActivityType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (repository.ActivityQuery, error) {
	q := repository.ActivityQuery{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Type:   normalizeActivityType(f.Type),
		UserID: f.UserID,
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.ActivityQuery{}, errInvalidTimeRange
	}
	return q, nil
}

func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]models.Activity, error) {
	const op = "activity.list"

	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, newError(KindValidation, op, err)
	}
	out, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, newError(KindPersistence, op, err)
	}
	return out, nil
}
