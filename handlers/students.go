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

type StudentHandler struct {
	records *records.Service
}

func NewStudentHandler(db *sql.DB) *StudentHandler {
	return &StudentHandler{records: records.NewService(db)}
}

// List handles GET /api/students
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	students, err := h.records.ListStudents(r.Context(), p)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, students)
}

// Create handles POST /api/students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.StudentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.records.CreateStudent(r.Context(), p, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      id,
		Message: "student created; login is the student number for both username and password",
	})
}

// Update handles PUT /api/students/{id}
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.StudentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.records.UpdateStudent(r.Context(), p, r.PathValue("id"), req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/students/{id}
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	if err := h.records.DeleteStudent(r.Context(), p, r.PathValue("id")); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
