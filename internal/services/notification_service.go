package services

import (
	"context"

	"github.com/google/uuid"

	"FRANCIGENA_BACK-END/internal/notify"
	"FRANCIGENA_BACK-END/internal/repository"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

var notificationTypes = map[string]bool{
	notify.TypeBookingCreated:   true,
	notify.TypeBookingCancelled: true,
	notify.TypeStructureOnRoute: true,
	notify.TypeStructureRemoved: true,
}

// NotificationService reads and acknowledges in-app notifications
type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// List applies the default page size and caps it at 100.
func (s *NotificationService) List(ctx context.Context, username string, f repository.NotificationFilter) (repository.NotificationPage, repository.NotificationFilter, error) {
	if f.Type != "" && !notificationTypes[f.Type] {
		return repository.NotificationPage{}, f, invalid("type", "invalid notification type")
	}
	if f.Limit < 0 {
		return repository.NotificationPage{}, f, invalid("limit", "must be a positive integer")
	}
	if f.Offset < 0 {
		return repository.NotificationPage{}, f, invalid("offset", "must be a non-negative integer")
	}
	if f.Limit == 0 {
		f.Limit = defaultNotificationLimit
	}
	if f.Limit > maxNotificationLimit {
		f.Limit = maxNotificationLimit
	}

	page, err := s.store.List(ctx, username, f)
	return page, f, err
}

func (s *NotificationService) MarkRead(ctx context.Context, username string, id uuid.UUID) error {
	return s.store.MarkRead(ctx, id, username)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, username string) (int64, error) {
	return s.store.MarkAllRead(ctx, username)
}
