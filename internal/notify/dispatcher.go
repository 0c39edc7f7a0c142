package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"FRANCIGENA_BACK-END/internal/models"
)

// Kind tells whether the event created or cancelled something.
type Kind string

const (
	KindCreated   Kind = "created"
	KindCancelled Kind = "cancelled"
)

// Notification types stored with each row
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingCancelled = "booking_cancelled"
	TypeStructureOnRoute = "structure_on_route"
	TypeStructureRemoved = "structure_removed"
)

// Dispatcher sends best-effort notifications. Calls return immediately;
// failures are logged and never reach the caller.
type Dispatcher interface {
	NotifyOwner(kind Kind, structureID int64, stayDate time.Time)
	NotifyPilgrims(kind Kind, venue Venue, recipients []string)
}

// Venue describes the structure a pilgrim notification is about. It is
// passed by value so it survives the structure being deleted.
type Venue struct {
	StructureID   int64
	StructureName string
	WaypointName  string
}

// Store persists one notification row.
type Store interface {
	Insert(ctx context.Context, n *models.Notification) error
}

// StructureLookup resolves a structure's owner and name.
type StructureLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Structure, error)
}

// Service is the Dispatcher backed by the notifications table.
type Service struct {
	store      Store
	structures StructureLookup
	timeout    time.Duration
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewService(store Store, structures StructureLookup, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:      store,
		structures: structures,
		timeout:    timeout,
		logger:     logger.With("component", "notify"),
	}
}

// NotifyOwner tells the structure's owner that a night was booked or freed.
func (s *Service) NotifyOwner(kind Kind, structureID int64, stayDate time.Time) {
	s.dispatch("owner", func(ctx context.Context) error {
		st, err := s.structures.GetByID(ctx, structureID)
		if err != nil {
			return fmt.Errorf("lookup structure %d: %w", structureID, err)
		}

		date := stayDate.Format(time.DateOnly)
		n := &models.Notification{Username: st.OwnerUsername}
		switch kind {
		case KindCreated:
			n.Type = TypeBookingCreated
			n.Title = "New booking"
			n.Message = fmt.Sprintf("You have a new booking on %s at %s", date, st.Name)
		case KindCancelled:
			n.Type = TypeBookingCancelled
			n.Title = "Booking cancelled"
			n.Message = fmt.Sprintf("The booking on %s at %s has been cancelled", date, st.Name)
		default:
			return fmt.Errorf("unknown kind %q", kind)
		}
		n.Data = encodeData(map[string]any{"structure_id": structureID, "stay_date": date})

		return s.store.Insert(ctx, n)
	})
}

// NotifyPilgrims tells each recipient about a structure along their route.
func (s *Service) NotifyPilgrims(kind Kind, venue Venue, recipients []string) {
	if len(recipients) == 0 {
		return
	}
	recipients = append([]string(nil), recipients...)

	s.dispatch("pilgrims", func(ctx context.Context) error {
		var typ, title, message string
		switch kind {
		case KindCreated:
			typ = TypeStructureOnRoute
			title = "New structure on your route"
			message = fmt.Sprintf("%s has opened at %s. Have a look if you have not booked yet!", venue.StructureName, venue.WaypointName)
		case KindCancelled:
			typ = TypeStructureRemoved
			title = "Booking cancelled"
			message = fmt.Sprintf("%s at %s, where you had booked, no longer exists. Please find another place to stay.", venue.StructureName, venue.WaypointName)
		default:
			return fmt.Errorf("unknown kind %q", kind)
		}
		data := encodeData(map[string]any{"structure_id": venue.StructureID})

		failed := 0
		for _, username := range recipients {
			n := &models.Notification{Username: username, Type: typ, Title: title, Message: message, Data: data}
			if err := s.store.Insert(ctx, n); err != nil {
				failed++
				s.logger.Warn("notification not stored", "username", username, "type", typ, "error", err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d notifications failed", failed, len(recipients))
		}
		return nil
	})
}

// Wait blocks until all in-flight dispatches are done.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) dispatch(target string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.logger.Warn("notification dispatch failed", "target", target, "error", err)
		}
	}()
}

func encodeData(v map[string]any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
