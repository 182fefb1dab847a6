// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/records"
)

type GradeHandler struct {
	records *records.Service
}

func NewGradeHandler(db *sql.DB) *GradeHandler {
	return &GradeHandler{records: records.NewService(db)}
}

// List handles GET /api/grades
// Admins may filter with student_id, subject_id, semester and academic_year.
func (h *GradeHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	q := r.URL.Query()
	filter := models.GradeFilter{
		StudentID:    q.Get("student_id"),
		SubjectID:    q.Get("subject_id"),
		Semester:     q.Get("semester"),
		AcademicYear: q.Get("academic_year"),
	}

	grades, err := h.records.ListGrades(r.Context(), p, filter)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, grades)
}

// Submit handles POST /api/grades
func (h *GradeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.GradeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.records.SubmitGrade(r.Context(), p, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, gradeResponse(res))
}

// Update handles PUT /api/grades/{id}
func (h *GradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	var req models.GradeUpdateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.records.UpdateGrade(r.Context(), p, r.PathValue("id"), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, gradeResponse(res))
}

// Delete handles DELETE /api/grades/{id}
func (h *GradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	if err := h.records.DeleteGrade(r.Context(), p, r.PathValue("id")); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// MyDashboard handles GET /api/student-dashboard
func (h *GradeHandler) MyDashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())
	h.writeDashboard(w, r, p, p.StudentID)
}

// StudentDashboard handles GET /api/students/{id}/dashboard
func (h *GradeHandler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())
	h.writeDashboard(w, r, p, r.PathValue("id"))
}

func (h *GradeHandler) writeDashboard(w http.ResponseWriter, r *http.Request, p auth.Principal, studentID string) {
	dash, err := h.records.Dashboard(r.Context(), p, studentID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, dash)
}

type gradeResult struct {
	models.GradeResult
	Message string `json:"message"`
}

func gradeResponse(res models.GradeResult) gradeResult {
	return gradeResult{
		GradeResult: res,
		Message:     fmt.Sprintf("grade saved: %g/100 (%s)", res.TotalGrade, res.LetterGrade),
	}
}
