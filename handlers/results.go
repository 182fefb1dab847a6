// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/polls"
)

type ResultsHandler struct {
	polls *polls.Service
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{polls: polls.NewService(db)}
}

// GetResults handles GET /api/polls/{id}/results
// Every vote with its voter, grouped by option in display order.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	results, err := h.polls.Results(r.Context(), p, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
