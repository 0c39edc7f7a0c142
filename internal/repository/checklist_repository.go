package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"FRANCIGENA_BACK-END/internal/models"
)

// ChecklistRepository stores packing checklists through bun
type ChecklistRepository struct {
	bun *bun.DB
}

func NewChecklistRepository(db *bun.DB) *ChecklistRepository {
	return &ChecklistRepository{bun: db}
}

// ListByTrip returns the trip's categories with their items
func (r *ChecklistRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.ChecklistCategory, error) {
	categories := []models.ChecklistCategory{}
	err := r.bun.NewSelect().
		Model(&categories).
		Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("ci.id")
		}).
		Where("cc.trip_id = ?", tripID).
		Order("cc.id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select checklist: %w", err)
	}
	return categories, nil
}

func (r *ChecklistRepository) CreateCategory(ctx context.Context, c *models.ChecklistCategory) error {
	_, err := r.bun.NewInsert().
		Model(c).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert checklist category: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) CreateItem(ctx context.Context, item *models.ChecklistItem) error {
	_, err := r.bun.NewInsert().
		Model(item).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert checklist item: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) SetItemChecked(ctx context.Context, itemID int64, checked bool) error {
	res, err := r.bun.NewUpdate().
		Model((*models.ChecklistItem)(nil)).
		Set("checked = ?", checked).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update checklist item %d: %w", itemID, err)
	}
	return affected(res, "checklist item", itemID)
}

func (r *ChecklistRepository) DeleteItem(ctx context.Context, itemID int64) error {
	res, err := r.bun.NewDelete().
		Model((*models.ChecklistItem)(nil)).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete checklist item %d: %w", itemID, err)
	}
	return affected(res, "checklist item", itemID)
}

// DeleteCategory removes the category; its items follow by cascade
func (r *ChecklistRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	res, err := r.bun.NewDelete().
		Model((*models.ChecklistCategory)(nil)).
		Where("id = ?", categoryID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete checklist category %d: %w", categoryID, err)
	}
	return affected(res, "checklist category", categoryID)
}

// TripOfCategory returns the trip a category belongs to
func (r *ChecklistRepository) TripOfCategory(ctx context.Context, categoryID int64) (int64, error) {
	var tripID int64
	err := r.bun.NewSelect().
		Model((*models.ChecklistCategory)(nil)).
		Column("trip_id").
		Where("id = ?", categoryID).
		Scan(ctx, &tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checklist category %d: %w", categoryID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("select checklist category %d: %w", categoryID, err)
	}
	return tripID, nil
}

// TripOfItem returns the trip an item belongs to
func (r *ChecklistRepository) TripOfItem(ctx context.Context, itemID int64) (int64, error) {
	var tripID int64
	err := r.bun.NewSelect().
		TableExpr("checklist_items AS ci").
		Join("JOIN checklist_categories AS cc ON cc.id = ci.category_id").
		ColumnExpr("cc.trip_id").
		Where("ci.id = ?", itemID).
		Scan(ctx, &tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checklist item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("select checklist item %d: %w", itemID, err)
	}
	return tripID, nil
}

func affected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
