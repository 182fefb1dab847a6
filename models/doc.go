// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with validate tags checked by the
validation package:

  - LoginRequest: username, password
  - StudentRequest: name, student_number, class, department, email, phone
  - SubjectRequest: name, code, credit_hours, department
  - GradeRequest, GradeUpdateRequest: term plus the four component scores
  - CreatePollRequest: title, description, options
  - TogglePollRequest: is_active
  - VoteRequest: option_id

Component scores are pointers so an absent score can be told apart from
an explicit zero; both count as zero when grading. Totals and letter
grades are never read from requests.

# Response Types

  - LoginResponse: token, expires_at, user
  - CreatedResponse: id, message
  - SuccessResponse: success, message
  - GradeResult: id and the derived totals
  - ErrorResponse: error, message

# Domain Types

  - Student, Subject
  - GradeView: a grade joined with its student and subject, optionally ranked
  - Dashboard: a student's grades with GPA, credits and standing
  - Poll, PollSummary, PollOption, PollDetail, PollResult
*/
package models
