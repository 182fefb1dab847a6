// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from the config:

  - "sqlite" (default): modernc.org/sqlite, pure Go. Foreign keys and a
    busy timeout are enabled through DSN pragmas, and the pool is limited to
    one connection.
  - "postgres": github.com/lib/pq.

The same DDL and $n placeholders work on both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - students, subjects: reference data
  - users: login accounts (admin, or student linked to a students row)
  - grades: one row per (student, subject, semester, academic_year)
  - polls, poll_options, poll_responses: poll lifecycle and votes

# Relationships

	students 1──* grades *──1 subjects
	students 1──0..1 users
	polls 1──* poll_options
	polls 1──* poll_responses *──1 students
	poll_options 1──* poll_responses

# Constraint Errors

IsUniqueViolation recognizes unique-constraint failures from either driver
so services can turn them into validation errors.
*/
package db
