// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the gradebook API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every API route is wrapped in request logging. Protected routes also pass
through RequireAuth, RequireAdmin or RequireStudent, which read the
Authorization: Bearer header.

# Endpoints

Public:

	GET  /health
	GET  /
	POST /api/login

Any signed-in user:

	GET /api/user
	GET /api/subjects
	GET /api/grades        - students only see their own
	GET /api/polls         - students only see active polls
	GET /api/polls/{id}

Admin:

	GET|POST      /api/students
	PUT|DELETE    /api/students/{id}
	GET           /api/students/{id}/dashboard
	POST          /api/subjects
	PUT|DELETE    /api/subjects/{id}
	POST          /api/grades
	PUT|DELETE    /api/grades/{id}
	POST          /api/polls
	PUT|DELETE    /api/polls/{id}
	GET           /api/polls/{id}/results

Student:

	GET  /api/student-dashboard
	POST /api/polls/{id}/vote

CORS is applied by the caller around the returned mux.
*/
package router
