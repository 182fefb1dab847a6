// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the gradebook API.

# Handler Types

Each handler is a struct over the service it adapts:

  - AuthHandler: Login and current user
  - StudentHandler: Student records
  - SubjectHandler: Subject catalogue
  - GradeHandler: Grade entry, listing and dashboards
  - PollHandler: Poll lifecycle
  - VotingHandler: Vote casting
  - ResultsHandler: Per-vote results for admins

Handlers are created via constructor functions that accept *sql.DB.
AuthHandler also takes the Config for its token secret and lifetime:

	gradeHandler := handlers.NewGradeHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)

# Request Flow

Handlers decode the body, read the caller from the request context (set
by the auth middleware) and delegate to the records or polls service.
Service errors are mapped to status codes by middleware.WriteError:

	validation -> 400, not found -> 404, unauthenticated -> 401,
	forbidden -> 403, anything else -> 500

A body that is not valid JSON is rejected with 400 before the service
is called.

# Login

Admins sign in with their own password. Students sign in with their
student number as both username and password; the account is created
with the student record.
*/
package handlers
