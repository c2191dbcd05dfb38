package main

import (
	"net/http"
)

func (app *application) analyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary := app.orderService.Summary()

	if err := app.jsonRespone(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
