package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"FRANCIGENA_BACK-END/internal/dto"
	"FRANCIGENA_BACK-END/internal/models"
	"FRANCIGENA_BACK-END/internal/utils"
)

// ChecklistManager is the packing-list side of the service layer
type ChecklistManager interface {
	List(ctx context.Context, username string, tripID int64) ([]models.ChecklistCategory, error)
	AddCategory(ctx context.Context, username string, tripID int64, name string) (*models.ChecklistCategory, error)
	AddItem(ctx context.Context, username string, categoryID int64, text string) (*models.ChecklistItem, error)
	CheckItem(ctx context.Context, username string, itemID int64, checked bool) error
	DeleteItem(ctx context.Context, username string, itemID int64) error
	DeleteCategory(ctx context.Context, username string, categoryID int64) error
}

type ChecklistHandler struct {
	checklists ChecklistManager
	logger     *slog.Logger
}

func NewChecklistHandler(checklists ChecklistManager, logger *slog.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists, logger: logger}
}

// GetChecklist handles GET /api/trips/{id}/checklist
// @Summary Packing list of a trip
// @Tags checklist
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.ChecklistResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{id}/checklist [get]
func (h *ChecklistHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	categories, err := h.checklists.List(r.Context(), username, tripID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	resp := dto.ChecklistResponse{TripID: tripID, Categories: make([]dto.ChecklistCategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// AddCategory handles POST /api/trips/{id}/checklist/categories
// @Summary Add a checklist category
// @Tags checklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param payload body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.ChecklistCategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/trips/{id}/checklist/categories [post]
func (h *ChecklistHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	c, err := h.checklists.AddCategory(r.Context(), username, tripID, req.Name)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toCategoryResponse(*c))
}

// AddItem handles POST /api/checklist/categories/{id}/items
// @Summary Add an item to a category
// @Tags checklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param payload body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.ChecklistItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/checklist/categories/{id}/items [post]
func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	item, err := h.checklists.AddItem(r.Context(), username, categoryID, req.Text)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toItemResponse(*item))
}

// CheckItem handles PUT /api/checklist/items/{id}/check
// @Summary Tick or untick an item
// @Tags checklist
// @Accept json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param payload body dto.CheckItemRequest true "Checked state"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/checklist/items/{id}/check [put]
func (h *ChecklistHandler) CheckItem(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.CheckItemRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := h.checklists.CheckItem(r.Context(), username, itemID, *req.Checked); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /api/checklist/items/{id}
// @Summary Delete an item
// @Tags checklist
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/checklist/items/{id} [delete]
func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.checklists.DeleteItem(r.Context(), username, itemID); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles DELETE /api/checklist/categories/{id}
// @Summary Delete a category and its items
// @Tags checklist
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/checklist/categories/{id} [delete]
func (h *ChecklistHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.checklists.DeleteCategory(r.Context(), username, categoryID); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toItemResponse(i models.ChecklistItem) dto.ChecklistItemResponse {
	return dto.ChecklistItemResponse{ID: i.ID, Text: i.Text, Checked: i.Checked}
}

func toCategoryResponse(c models.ChecklistCategory) dto.ChecklistCategoryResponse {
	resp := dto.ChecklistCategoryResponse{ID: c.ID, Name: c.Name, Items: make([]dto.ChecklistItemResponse, 0, len(c.Items))}
	for _, i := range c.Items {
		resp.Items = append(resp.Items, toItemResponse(i))
	}
	return resp
}
