package booking

import (
	"context"
	"sync"
	"time"

	"FRANCIGENA_BACK-END/internal/models"
)

type slot struct {
	structureID int64
	date        string
}

// memoryStore is an in-process Store. One mutex serializes reservations the
// way a row lock does in the database.
type memoryStore struct {
	mu       sync.Mutex
	beds     map[int64]int
	bookings map[slot][]models.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		beds:     make(map[int64]int),
		bookings: make(map[slot][]models.Booking),
	}
}

func (m *memoryStore) SetTotalBeds(structureID int64, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beds[structureID] = total
}

func (m *memoryStore) GetTotalBeds(_ context.Context, structureID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total, ok := m.beds[structureID]
	if !ok {
		return 0, ErrStructureNotFound
	}
	return total, nil
}

func (m *memoryStore) GetOccupancy(_ context.Context, structureID int64, stayDate time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.occupied(structureID, stayDate), nil
}

// InsertBooking stores a booking without any capacity check.
func (m *memoryStore) InsertBooking(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.beds[b.StructureID]; !ok {
		return ErrStructureNotFound
	}
	k := key(b.StructureID, b.StayDate)
	m.bookings[k] = append(m.bookings[k], b)
	return nil
}

func (m *memoryStore) ReserveBeds(_ context.Context, b models.Booking) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total, ok := m.beds[b.StructureID]
	if !ok {
		return Decision{}, ErrStructureNotFound
	}
	d := Evaluate(m.occupied(b.StructureID, b.StayDate), total, b.BedCount)
	if d.Admitted {
		k := key(b.StructureID, b.StayDate)
		m.bookings[k] = append(m.bookings[k], b)
	}
	return d, nil
}

func (m *memoryStore) occupied(structureID int64, stayDate time.Time) int {
	n := 0
	for _, b := range m.bookings[key(structureID, stayDate)] {
		n += b.BedCount
	}
	return n
}

func key(structureID int64, stayDate time.Time) slot {
	return slot{structureID: structureID, date: stayDate.Format(time.DateOnly)}
}
