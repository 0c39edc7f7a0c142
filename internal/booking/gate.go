package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"FRANCIGENA_BACK-END/internal/models"
)

var (
	ErrOverbooked        = errors.New("overbooked")
	ErrStructureNotFound = errors.New("structure not found")
	ErrInvalidBedCount   = errors.New("bed count must be at least 1")
)

// Reason explains a rejected admission.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonOverbooked Reason = "Overbooked"
)

// Decision is the outcome of a capacity check.
type Decision struct {
	Admitted  bool   `json:"admitted"`
	Reason    Reason `json:"reason,omitempty"`
	Occupied  int    `json:"occupied"`
	TotalBeds int    `json:"total_beds"`
	Requested int    `json:"requested"`
}

// Free is the number of beds still available before the request.
func (d Decision) Free() int {
	if d.Occupied >= d.TotalBeds {
		return 0
	}
	return d.TotalBeds - d.Occupied
}

// Err returns nil when admitted and an error wrapping ErrOverbooked otherwise.
func (d Decision) Err() error {
	if d.Admitted {
		return nil
	}
	return fmt.Errorf("%w: %d of %d beds taken, %d requested", ErrOverbooked, d.Occupied, d.TotalBeds, d.Requested)
}

// Evaluate admits iff occupied + requested <= total.
func Evaluate(occupied, total, requested int) Decision {
	d := Decision{Occupied: occupied, TotalBeds: total, Requested: requested}
	if occupied+requested <= total {
		d.Admitted = true
		return d
	}
	d.Reason = ReasonOverbooked
	return d
}

// CapacityReader exposes the two reads the gate needs. GetTotalBeds returns
// ErrStructureNotFound for an unknown structure; GetOccupancy returns 0 when
// nothing is booked.
type CapacityReader interface {
	GetTotalBeds(ctx context.Context, structureID int64) (int, error)
	GetOccupancy(ctx context.Context, structureID int64, stayDate time.Time) (int, error)
}

// Store can also reserve atomically: it must evaluate and insert under a
// lock on the structure so that concurrent reservations are serialized.
type Store interface {
	CapacityReader
	ReserveBeds(ctx context.Context, b models.Booking) (Decision, error)
}

// Gate guards bed capacity for a structure and night.
type Gate struct {
	store  Store
	logger *slog.Logger
}

func NewGate(store Store, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, logger: logger}
}

// Admit reads capacity and occupancy and evaluates the request without
// writing anything. A booking inserted after Admit is not protected against
// a concurrent one; use Reserve for that.
func (g *Gate) Admit(ctx context.Context, structureID int64, stayDate time.Time, requested int) (Decision, error) {
	if requested < 1 {
		return Decision{}, ErrInvalidBedCount
	}

	total, err := g.store.GetTotalBeds(ctx, structureID)
	if err != nil {
		return Decision{}, fmt.Errorf("read total beds: %w", err)
	}
	occupied, err := g.store.GetOccupancy(ctx, structureID, stayDate)
	if err != nil {
		return Decision{}, fmt.Errorf("read occupancy: %w", err)
	}

	return Evaluate(occupied, total, requested), nil
}

// Reserve admits and inserts the booking as one atomic step.
func (g *Gate) Reserve(ctx context.Context, b models.Booking) (Decision, error) {
	if b.BedCount < 1 {
		return Decision{}, ErrInvalidBedCount
	}

	d, err := g.store.ReserveBeds(ctx, b)
	if err != nil {
		return Decision{}, fmt.Errorf("reserve beds: %w", err)
	}

	if !d.Admitted {
		g.logger.Info("booking rejected",
			"structure_id", b.StructureID,
			"stay_date", b.StayDate.Format(time.DateOnly),
			"occupied", d.Occupied,
			"total_beds", d.TotalBeds,
			"requested", d.Requested,
		)
	}
	return d, nil
}
