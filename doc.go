// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the gradebook API server.

The gradebook tracks students, subjects and per-term grades for a school,
computes letter grades, subject ranks and GPA, and runs simple
single-choice polls that students vote in.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=gradebook.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --jwt-secret ...

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Session token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (--token-ttl): Session lifetime (default: 24h)
  - ADMIN_USERNAME, ADMIN_PASSWORD: Bootstrap admin created at startup
  - LOG_LEVEL (--log-level), LOG_FORMAT: slog level and text/json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (login, students, subjects, grades, polls)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth, CORS, request logging, JSON helpers
  - records: Student, subject and grade storage rules
  - polls: Poll lifecycle, voting and results
  - grading: Totals, letter bands, ranks and GPA
  - models: Request/response types
  - auth: Session tokens, password hashing, principals
  - apperrors: Error kinds shared by services and handlers
  - validation: Struct validation for request bodies
  - db: Connection, schema creation, admin bootstrap
  - cliparse: Configuration parsing and logger setup

See package documentation for each component.
*/
package main
