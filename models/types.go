package models

import (
	"time"

	"github.com/danielhkuo/gradebook/auth"
)

// Request types

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type StudentRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	StudentNumber string `json:"student_number" validate:"required,max=50"`
	Class         string `json:"class" validate:"required,max=100"`
	Department    string `json:"department" validate:"required,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
}

type SubjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Code        string `json:"code" validate:"required,max=50"`
	CreditHours int    `json:"credit_hours" validate:"gt=0,lte=30"`
	Department  string `json:"department" validate:"omitempty,max=200"`
}

// GradeComponents are the raw scores sent by the client. Absent scores
// count as zero.
type GradeComponents struct {
	MidtermTheory    *float64 `json:"midterm_theory" validate:"omitempty,gte=0,lte=30"`
	MidtermPractical *float64 `json:"midterm_practical" validate:"omitempty,gte=0,lte=10"`
	FinalTheory      *float64 `json:"final_theory" validate:"omitempty,gte=0,lte=40"`
	FinalPractical   *float64 `json:"final_practical" validate:"omitempty,gte=0,lte=20"`
}

type GradeRequest struct {
	StudentID    string `json:"student_id" validate:"required"`
	SubjectID    string `json:"subject_id" validate:"required"`
	Semester     string `json:"semester" validate:"required,max=50"`
	AcademicYear string `json:"academic_year" validate:"required,max=20"`
	GradeComponents
}

type GradeUpdateRequest struct {
	Semester     string `json:"semester" validate:"required,max=50"`
	AcademicYear string `json:"academic_year" validate:"required,max=20"`
	GradeComponents
}

// CreatePollRequest is checked after titles and options are trimmed and
// blank options dropped
type CreatePollRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=1000"`
	Options     []string `json:"options" validate:"min=2,dive,required,max=200"`
}

type TogglePollRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type VoteRequest struct {
	OptionID string `json:"option_id" validate:"required"`
}

// GradeFilter narrows ListGrades. Empty fields match everything.
type GradeFilter struct {
	StudentID    string
	SubjectID    string
	Semester     string
	AcademicYear string
}

// Response types

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      auth.Principal `json:"user"`
}

type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type GradeResult struct {
	ID           string  `json:"id"`
	MidtermTotal float64 `json:"midterm_total"`
	FinalTotal   float64 `json:"final_total"`
	TotalGrade   float64 `json:"total_grade"`
	LetterGrade  string  `json:"letter_grade"`
}

// Domain types

type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StudentNumber string    `json:"student_number"`
	Class         string    `json:"class"`
	Department    string    `json:"department"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CreditHours int       `json:"credit_hours"`
	Department  string    `json:"department,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GradeView is a grade joined with its student and subject. Rank and
// TotalStudents are only set when listing a single student's grades.
type GradeView struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"student_id"`
	StudentName      string    `json:"student_name"`
	StudentNumber    string    `json:"student_number"`
	SubjectID        string    `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	SubjectCode      string    `json:"subject_code"`
	CreditHours      int       `json:"credit_hours"`
	MidtermTheory    float64   `json:"midterm_theory"`
	MidtermPractical float64   `json:"midterm_practical"`
	MidtermTotal     float64   `json:"midterm_total"`
	FinalTheory      float64   `json:"final_theory"`
	FinalPractical   float64   `json:"final_practical"`
	FinalTotal       float64   `json:"final_total"`
	TotalGrade       float64   `json:"total_grade"`
	LetterGrade      string    `json:"letter_grade"`
	Semester         string    `json:"semester"`
	AcademicYear     string    `json:"academic_year"`
	Rank             *int      `json:"rank,omitempty"`
	TotalStudents    *int      `json:"total_students,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Dashboard struct {
	Student      Student     `json:"student"`
	Grades       []GradeView `json:"grades"`
	GPA          float64     `json:"gpa"`
	TotalCredits int         `json:"total_credits"`
	Standing     string      `json:"standing"`
}

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// PollSummary is a poll as shown in listings
type PollSummary struct {
	Poll
	CreatedAgo    string `json:"created_ago"`
	ResponseCount int    `json:"response_count"`
	TotalStudents int    `json:"total_students"`
}

type PollOption struct {
	ID         string `json:"id"`
	PollID     string `json:"poll_id"`
	OptionText string `json:"option_text"`
	Position   int    `json:"position"`
	VoteCount  int    `json:"vote_count"`
}

type PollDetail struct {
	Poll     Poll         `json:"poll"`
	Options  []PollOption `json:"options"`
	UserVote *string      `json:"user_vote,omitempty"`
}

// PollResult is one recorded vote
type PollResult struct {
	OptionID      string    `json:"option_id"`
	OptionText    string    `json:"option_text"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	StudentNumber string    `json:"student_number"`
	VotedAt       time.Time `json:"voted_at"`
	VotedAgo      string    `json:"voted_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
