// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gradebook/grading"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/testutil"
)

func TestCreateSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSubjectHandler(db)
	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{"valid", models.SubjectRequest{Name: "Networks", Code: "CS301", CreditHours: 4}, http.StatusCreated},
		{"duplicate code", models.SubjectRequest{Name: "Other", Code: "CS201", CreditHours: 3}, http.StatusBadRequest},
		{"zero credit hours", models.SubjectRequest{Name: "Seminar", Code: "CS001"}, http.StatusBadRequest},
		{"missing name", models.SubjectRequest{Code: "CS002", CreditHours: 2}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(testutil.MakeRequest("POST", "/api/subjects", tt.requestBody, nil), admin)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestListSubjects_Student(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSubjectHandler(db)
	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)

	req := asUser(httptest.NewRequest("GET", "/api/subjects", nil), student)
	w := httptest.NewRecorder()
	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var subjects []models.Subject
	testutil.AssertJSON(t, w, &subjects)
	if len(subjects) != 1 || subjects[0].CreditHours != 3 {
		t.Errorf("Unexpected subjects %+v", subjects)
	}
}

func TestUpdateAndDeleteSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSubjectHandler(db)
	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	subjectID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)
	gradeID := testutil.CreateTestGrade(t, db, student.StudentID, subjectID, grading.Components{FinalTheory: 30})

	req := asUser(testutil.MakeRequest("PUT", "/api/subjects/"+subjectID,
		models.SubjectRequest{Name: "Database Systems", Code: "CS201", CreditHours: 4}, nil), admin)
	req.SetPathValue("id", subjectID)
	w := httptest.NewRecorder()
	handler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	del := func() *httptest.ResponseRecorder {
		req := asUser(httptest.NewRequest("DELETE", "/api/subjects/"+subjectID, nil), admin)
		req.SetPathValue("id", subjectID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		return w
	}

	// Still graded
	testutil.AssertStatus(t, del(), http.StatusBadRequest)

	if _, err := db.Exec(`DELETE FROM grades WHERE id = $1`, gradeID); err != nil {
		t.Fatal(err)
	}
	testutil.AssertStatus(t, del(), http.StatusOK)
	testutil.AssertStatus(t, del(), http.StatusNotFound)
}
