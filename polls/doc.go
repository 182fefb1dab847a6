// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the class poll lifecycle: create, toggle, vote,
inspect and delete.

Every operation takes the caller's auth.Principal and enforces its own
role rules, so handlers only decode input and map errors.

	svc := polls.NewService(db)
	id, err := svc.Create(ctx, admin, models.CreatePollRequest{
		Title:   "Field trip",
		Options: []string{"Museum", "Beach"},
	})

# Rules

  - New polls are active. Blank options are dropped; fewer than two left
    is a validation error and nothing is written.
  - Only students vote, only on active polls, and only for an option of
    that poll. A second vote replaces the first (one row per student per
    poll).
  - Students list and read active polls only. Admins see everything.
  - Delete removes responses, options and the poll in one transaction.

# Errors

All failures are *apperrors.Error values; match them with errors.Is
against apperrors.ErrValidation, ErrNotFound, ErrForbidden and friends.
*/
package polls
