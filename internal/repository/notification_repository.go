package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"FRANCIGENA_BACK-END/internal/models"
)

// NotificationFilter narrows a notification listing
type NotificationFilter struct {
	UnreadOnly bool
	Type       string
	Limit      int
	Offset     int
}

// NotificationPage is one page of notifications plus counters
type NotificationPage struct {
	Items  []models.Notification
	Total  int
	Unread int
}

// NotificationRepository persists in-app notifications
type NotificationRepository struct {
	db DB
}

func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert validates and stores a notification, assigning its id
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	if strings.TrimSpace(n.Username) == "" {
		return errors.New("notification username is required")
	}
	if strings.TrimSpace(n.Type) == "" {
		return errors.New("notification type is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("notification title is required")
	}
	if len(n.Title) > 255 {
		return errors.New("notification title exceeds maximum length of 255 characters")
	}
	if len(n.Message) > 10000 {
		return errors.New("notification message exceeds maximum length of 10000 characters")
	}
	if len(n.Data) > 1024*1024 {
		return errors.New("notification data exceeds maximum size of 1MB")
	}

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	var data any
	if len(n.Data) > 0 {
		data = string(n.Data)
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (id, username, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING created_at
	`, n.ID, n.Username, n.Type, n.Title, n.Message, data).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns a page of the user's notifications, newest first
func (r *NotificationRepository) List(ctx context.Context, username string, f NotificationFilter) (NotificationPage, error) {
	var page NotificationPage

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM notifications WHERE username = $1 AND read = false`, username,
	).Scan(&page.Unread); err != nil {
		return page, fmt.Errorf("count unread notifications: %w", err)
	}

	args := []any{username}
	where := `WHERE username = $1`
	if f.UnreadOnly {
		where += ` AND read = false`
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications `+where, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count notifications: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT id, username, type, title, message, data, read, created_at
		FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return page, fmt.Errorf("query notifications: %w", err)
	}

	page.Items, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.Notification])
	if err != nil {
		return page, fmt.Errorf("collect notifications: %w", err)
	}
	return page, nil
}

// MarkRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, username string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, username string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE username = $1 AND read = false`, username)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
