// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package records stores grades and the students and subjects they belong to.

# Grades

SubmitGrade and UpdateGrade both validate the component scores and then
run grading.Compute, so the stored totals and letter grade never come from
the client. A second submission for the same student, subject, semester
and academic year replaces the first.

	res, err := svc.SubmitGrade(ctx, admin, models.GradeRequest{
		StudentID:    studentID,
		SubjectID:    subjectID,
		Semester:     "Fall",
		AcademicYear: "2024-2025",
		GradeComponents: models.GradeComponents{MidtermTheory: &mt, FinalTheory: &ft},
	})

ListGrades scopes students to their own rows. Whenever the listing is for
one student, each grade gets its competition rank, computed from the
subject's current totals on every call.

# Dashboard

Dashboard returns the student, their ranked grades, credit-weighted GPA,
total credits and standing label.

# Students and Subjects

Creating a student also creates their login: username and password are the
student number. Changing the number moves the login with it. Deleting a
student removes their grades, poll responses and login in the same
transaction.

Subject codes are unique, credit hours must be positive, and a subject
that still has grades cannot be deleted.
*/
package records
