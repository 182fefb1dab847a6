// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/records"
)

type SubjectHandler struct {
	records *records.Service
}

func NewSubjectHandler(db *sql.DB) *SubjectHandler {
	return &SubjectHandler{records: records.NewService(db)}
}

// List handles GET /api/subjects
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	subjects, err := h.records.ListSubjects(r.Context(), p)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, subjects)
}

// Create handles POST /api/subjects
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.SubjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.records.CreateSubject(r.Context(), p, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// Update handles PUT /api/subjects/{id}
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.SubjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.records.UpdateSubject(r.Context(), p, r.PathValue("id"), req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/subjects/{id}
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	if err := h.records.DeleteSubject(r.Context(), p, r.PathValue("id")); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
