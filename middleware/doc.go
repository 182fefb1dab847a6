// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request id comes from the X-Request-ID header or
is generated, and is echoed back in the response.

# Authentication

Session tokens arrive as "Authorization: Bearer <jwt>". The Require*
wrappers validate them and put the auth.Principal on the request context:

	mux.HandleFunc("GET /api/grades", middleware.WithLogging(middleware.RequireAuth(tokens, h.List)))
	mux.HandleFunc("POST /api/grades", middleware.WithLogging(middleware.RequireAdmin(tokens, h.Submit)))
	mux.HandleFunc("GET /api/student-dashboard", middleware.WithLogging(middleware.RequireStudent(tokens, h.Mine)))

Missing or bad tokens get 401; the wrong role gets 403.

# Errors

WriteError maps apperrors kinds onto status codes:

	ErrValidation      400
	ErrNotFound        404
	ErrUnauthenticated 401
	ErrForbidden       403
	anything else      500 (logged with its cause)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Used in request
and login logs.
*/
package middleware
