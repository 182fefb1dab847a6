// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/cliparse"
	"github.com/danielhkuo/gradebook/handlers"
	"github.com/danielhkuo/gradebook/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	studentHandler := handlers.NewStudentHandler(db)
	subjectHandler := handlers.NewSubjectHandler(db)
	gradeHandler := handlers.NewGradeHandler(db)
	pollHandler := handlers.NewPollHandler(db)
	votingHandler := handlers.NewVotingHandler(db)
	resultsHandler := handlers.NewResultsHandler(db)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(tokens, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(tokens, h))
	}
	student := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireStudent(tokens, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /api/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /api/user", authed(authHandler.CurrentUser))

	// Students (admin)
	mux.HandleFunc("GET /api/students", admin(studentHandler.List))
	mux.HandleFunc("POST /api/students", admin(studentHandler.Create))
	mux.HandleFunc("PUT /api/students/{id}", admin(studentHandler.Update))
	mux.HandleFunc("DELETE /api/students/{id}", admin(studentHandler.Delete))
	mux.HandleFunc("GET /api/students/{id}/dashboard", admin(gradeHandler.StudentDashboard))

	// Subjects (read for everyone signed in, write for admins)
	mux.HandleFunc("GET /api/subjects", authed(subjectHandler.List))
	mux.HandleFunc("POST /api/subjects", admin(subjectHandler.Create))
	mux.HandleFunc("PUT /api/subjects/{id}", admin(subjectHandler.Update))
	mux.HandleFunc("DELETE /api/subjects/{id}", admin(subjectHandler.Delete))

	// Grades
	mux.HandleFunc("GET /api/grades", authed(gradeHandler.List))
	mux.HandleFunc("POST /api/grades", admin(gradeHandler.Submit))
	mux.HandleFunc("PUT /api/grades/{id}", admin(gradeHandler.Update))
	mux.HandleFunc("DELETE /api/grades/{id}", admin(gradeHandler.Delete))
	mux.HandleFunc("GET /api/student-dashboard", student(gradeHandler.MyDashboard))

	// Polls
	mux.HandleFunc("GET /api/polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("GET /api/polls/{id}", authed(pollHandler.GetPoll))
	mux.HandleFunc("POST /api/polls", admin(pollHandler.CreatePoll))
	mux.HandleFunc("PUT /api/polls/{id}", admin(pollHandler.SetActive))
	mux.HandleFunc("DELETE /api/polls/{id}", admin(pollHandler.DeletePoll))
	mux.HandleFunc("POST /api/polls/{id}/vote", student(votingHandler.Vote))
	mux.HandleFunc("GET /api/polls/{id}/results", admin(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "not found")
			return
		}
		w.Write([]byte("gradebook API v1"))
	})

	return mux
}
