package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/parser"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
)

var ErrInvalidID = errors.New("invalid ID format")

type BundleRequest struct {
	Enabled        bool  `json:"enabled"`
	BuyQuantity    int64 `json:"buy_quantity" validate:"required_with=Enabled,omitempty,min=2"`
	BundlePrice    int64 `json:"bundle_price" validate:"omitempty,min=0"`
	ShowPromoLabel bool  `json:"show_promo_label"`
}

type MenuItemRequest struct {
	Name      string         `json:"name" validate:"required"`
	BasePrice int64          `json:"base_price" validate:"required,gt=0"`
	Category  string         `json:"category" validate:"required"`
	Image     string         `json:"image"`
	Stock     *int64         `json:"stock" validate:"omitempty,min=0"`
	MinStock  *int64         `json:"min_stock" validate:"omitempty,min=0"`
	Bundle    *BundleRequest `json:"bundle"`
}

func (req *MenuItemRequest) toDomain(id string) *domain.MenuItem {
	item := &domain.MenuItem{
		ID:        id,
		Name:      req.Name,
		BasePrice: req.BasePrice,
		Category:  domain.Category(req.Category),
		Image:     req.Image,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}
	if req.Bundle != nil {
		item.Bundle = &domain.BundleConfig{
			Enabled:        req.Bundle.Enabled,
			BuyQuantity:    req.Bundle.BuyQuantity,
			BundlePrice:    req.Bundle.BundlePrice,
			ShowPromoLabel: req.Bundle.ShowPromoLabel,
		}
	}
	return item
}

func (app *application) listMenuHandler(w http.ResponseWriter, r *http.Request) {
	items := app.menuService.List()

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req MenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item := req.toDomain("")
	if err := item.Validate(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.menuService.Create(r.Context(), item); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req MenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item := req.toDomain(itemID)
	if err := item.Validate(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.menuService.Update(r.Context(), item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.menuService.Delete(r.Context(), itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"message": "menu item deleted",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) lowStockHandler(w http.ResponseWriter, r *http.Request) {
	items := app.menuService.LowStock()

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listStockAlertsHandler(w http.ResponseWriter, r *http.Request) {
	if app.alertRepo == nil {
		app.badRequestResponse(w, r, errors.New("stock alert history requires the remote backend"))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	alerts, err := app.alertRepo.ListRecent(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, alerts); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateImportTaskRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
	ReadRange     string `json:"read_range"`
}

func (app *application) createImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	if app.importService == nil || !app.importService.Enabled() {
		app.badRequestResponse(w, r, errors.New("menu import is not configured"))
		return
	}

	var req CreateImportTaskRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	readRange := req.ReadRange
	if readRange == "" {
		readRange = parser.DefaultReadRange
	}

	taskID, err := app.importService.CreateImportTask(r.Context(), req.SpreadsheetID, readRange)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": taskID,
		"status":  "queued",
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	if app.importService == nil {
		app.badRequestResponse(w, r, errors.New("menu import is not configured"))
		return
	}

	taskID := chi.URLParam(r, "task_id")
	if taskID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	task, err := app.importService.GetTaskStatus(r.Context(), taskID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
