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

type VotingHandler struct {
	polls *polls.Service
}

func NewVotingHandler(db *sql.DB) *VotingHandler {
	return &VotingHandler{polls: polls.NewService(db)}
}

// Vote handles POST /api/polls/{id}/vote
// Voting again replaces the student's earlier choice.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Struct(req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.polls.Vote(r.Context(), p, r.PathValue("id"), req.OptionID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "vote recorded",
	})
}
