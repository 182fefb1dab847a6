// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/polls"
	"github.com/danielhkuo/gradebook/validation"
)

type PollHandler struct {
	polls *polls.Service
}

func NewPollHandler(db *sql.DB) *PollHandler {
	return &PollHandler{polls: polls.NewService(db)}
}

// ListPolls handles GET /api/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	list, err := h.polls.List(r.Context(), p)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	detail, err := h.polls.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.polls.Create(r.Context(), p, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      pollID,
		Message: "poll created",
	})
}

// SetActive handles PUT /api/polls/{id}
func (h *PollHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.TogglePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Struct(req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.polls.SetActive(r.Context(), p, r.PathValue("id"), *req.IsActive); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeletePoll handles DELETE /api/polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	if err := h.polls.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "poll deleted",
	})
}
