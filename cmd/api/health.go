package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Mode      string            `json:"mode"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// check backend
	dbStatus := "ok"
	if app.storage != nil {
		if err := app.storage.Ping(r.Context()); err != nil {
			dbStatus = "error"
		}
	}

	// check broker: assume ok if app is running
	queueStatus := "ok"
	if app.broker == nil {
		queueStatus = "disabled"
	}

	response := HealthResponse{
		Status:    "healthy",
		Version:   version,
		Mode:      app.config.mode,
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": dbStatus,
			"queue":    queueStatus,
		},
	}

	if dbStatus != "ok" {
		response.Status = "unhealthy"
		if err := writeJson(w, http.StatusServiceUnavailable, response); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
