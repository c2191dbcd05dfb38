package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/cart"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/service"
)

type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,min=1"`
	Note       string `json:"note"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	Note          string             `json:"note"`
	PaymentStatus string             `json:"payment_status" validate:"omitempty,oneof=Paid Unpaid"`
}

type UpdateOrderRequest struct {
	Items         *[]OrderLineRequest `json:"items" validate:"omitempty,min=1,dive"`
	CustomerName  *string             `json:"customer_name"`
	Note          *string             `json:"note"`
	ChangeSummary string              `json:"change_summary"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Preparing Completed 'Picked Up' Cancelled"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=Paid Unpaid"`
}

// orderErrorResponse maps service errors onto the API error vocabulary:
// missing things are 404, blocked edits and illegal transitions are 409.
func (app *application) orderErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, domain.ErrOrderCancelled),
		errors.Is(err, domain.ErrEditBlocked),
		errors.Is(err, domain.ErrInvalidTransition):
		app.conflictResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders := app.orderService.List()

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderService.Get(orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listOrderItemsHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	rows, err := app.orderService.LineItemRows(r.Context(), orderID)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, rows); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	draft := cart.New()
	draft.SetCustomerName(req.CustomerName)
	draft.SetOrderNote(req.Note)

	for _, line := range req.Items {
		item, err := app.menuService.Get(line.MenuItemID)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		draft.Add(*item)
		if line.Quantity > 1 {
			if err := draft.AdjustQuantity(line.MenuItemID, line.Quantity-1); err != nil {
				app.badRequestResponse(w, r, err)
				return
			}
		}
		if line.Note != "" {
			if err := draft.SetItemNote(line.MenuItemID, line.Note); err != nil {
				app.badRequestResponse(w, r, err)
				return
			}
		}
	}

	payment := domain.PaymentStatus(req.PaymentStatus)
	if payment == "" {
		payment = domain.PaymentUnpaid
	}

	order, err := app.orderService.CreateOrder(r.Context(), draft, payment)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var lines []service.LineChange
	if req.Items != nil {
		lines = make([]service.LineChange, 0, len(*req.Items))
		for _, line := range *req.Items {
			lines = append(lines, service.LineChange{
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				Note:       line.Note,
			})
		}
	}

	order, err := app.orderService.UpdateOrder(r.Context(), orderID, lines, req.CustomerName, req.Note, req.ChangeSummary)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	response := map[string]string{
		"message": "order deleted",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updatePaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.UpdatePaymentStatus(r.Context(), orderID, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) togglePreparedHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	itemID := chi.URLParam(r, "item_id")
	if orderID == "" || itemID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderService.TogglePrepared(r.Context(), orderID, itemID)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}
