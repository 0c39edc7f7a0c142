package services

import (
	"context"
	"strings"

	"FRANCIGENA_BACK-END/internal/models"
)

// ChecklistService manages packing lists attached to trips. Every call
// checks that the trip belongs to the caller.
type ChecklistService struct {
	checklists ChecklistStore
	trips      TripStore
}

func NewChecklistService(checklists ChecklistStore, trips TripStore) *ChecklistService {
	return &ChecklistService{checklists: checklists, trips: trips}
}

func (s *ChecklistService) List(ctx context.Context, username string, tripID int64) ([]models.ChecklistCategory, error) {
	if err := s.authorize(ctx, username, tripID); err != nil {
		return nil, err
	}
	return s.checklists.ListByTrip(ctx, tripID)
}

func (s *ChecklistService) AddCategory(ctx context.Context, username string, tripID int64, name string) (*models.ChecklistCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if err := s.authorize(ctx, username, tripID); err != nil {
		return nil, err
	}

	c := &models.ChecklistCategory{TripID: tripID, Name: name, Items: []models.ChecklistItem{}}
	if err := s.checklists.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ChecklistService) AddItem(ctx context.Context, username string, categoryID int64, text string) (*models.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text", "is required")
	}
	tripID, err := s.checklists.TripOfCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, username, tripID); err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{CategoryID: categoryID, Text: text}
	if err := s.checklists.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ChecklistService) CheckItem(ctx context.Context, username string, itemID int64, checked bool) error {
	if err := s.authorizeItem(ctx, username, itemID); err != nil {
		return err
	}
	return s.checklists.SetItemChecked(ctx, itemID, checked)
}

func (s *ChecklistService) DeleteItem(ctx context.Context, username string, itemID int64) error {
	if err := s.authorizeItem(ctx, username, itemID); err != nil {
		return err
	}
	return s.checklists.DeleteItem(ctx, itemID)
}

func (s *ChecklistService) DeleteCategory(ctx context.Context, username string, categoryID int64) error {
	tripID, err := s.checklists.TripOfCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, username, tripID); err != nil {
		return err
	}
	return s.checklists.DeleteCategory(ctx, categoryID)
}

func (s *ChecklistService) authorizeItem(ctx context.Context, username string, itemID int64) error {
	tripID, err := s.checklists.TripOfItem(ctx, itemID)
	if err != nil {
		return err
	}
	return s.authorize(ctx, username, tripID)
}

func (s *ChecklistService) authorize(ctx context.Context, username string, tripID int64) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.PilgrimUsername != username {
		return ErrForbidden
	}
	return nil
}
