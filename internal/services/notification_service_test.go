package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/notify"
	"FRANCIGENA_BACK-END/internal/repository"
)

type notificationStore struct {
	lastFilter repository.NotificationFilter
}

func (s *notificationStore) List(_ context.Context, _ string, f repository.NotificationFilter) (repository.NotificationPage, error) {
	s.lastFilter = f
	return repository.NotificationPage{Total: 3, Unread: 1}, nil
}

func (s *notificationStore) MarkRead(context.Context, uuid.UUID, string) error { return nil }

func (s *notificationStore) MarkAllRead(context.Context, string) (int64, error) { return 2, nil }

func TestNotificationListDefaults(t *testing.T) {
	store := &notificationStore{}
	svc := NewNotificationService(store)

	_, f, err := svc.List(context.Background(), "anna", repository.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, f.Limit)

	_, f, err = svc.List(context.Background(), "anna", repository.NotificationFilter{Limit: 500, Type: notify.TypeBookingCreated})
	require.NoError(t, err)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 100, store.lastFilter.Limit)

	var verr *ValidationError
	_, _, err = svc.List(context.Background(), "anna", repository.NotificationFilter{Type: "party"})
	assert.ErrorAs(t, err, &verr)
	_, _, err = svc.List(context.Background(), "anna", repository.NotificationFilter{Offset: -1})
	assert.ErrorAs(t, err, &verr)
}
