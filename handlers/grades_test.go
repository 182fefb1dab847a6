// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/grading"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/testutil"
)

func TestSubmitGrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewGradeHandler(db)

	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	subjectID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp map[string]interface{})
	}{
		{
			name: "valid grade",
			requestBody: map[string]interface{}{
				"student_id": student.StudentID, "subject_id": subjectID,
				"semester": "Fall", "academic_year": "2024-2025",
				"midterm_theory": 25, "midterm_practical": 8, "final_theory": 35, "final_practical": 18,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["midterm_total"] != 33.0 || resp["final_total"] != 53.0 || resp["total_grade"] != 86.0 {
					t.Errorf("Unexpected totals %+v", resp)
				}
				if resp["letter_grade"] != "A-" {
					t.Errorf("Expected A-, got %v", resp["letter_grade"])
				}
				if resp["id"] == "" {
					t.Error("Expected grade id")
				}
			},
		},
		{
			name: "client totals are ignored",
			requestBody: map[string]interface{}{
				"student_id": student.StudentID, "subject_id": subjectID,
				"semester": "Spring", "academic_year": "2024-2025",
				"midterm_theory": 10, "total_grade": 100, "letter_grade": "A+",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["total_grade"] != 10.0 || resp["letter_grade"] != "F" {
					t.Errorf("Expected 10/F, got %v/%v", resp["total_grade"], resp["letter_grade"])
				}
			},
		},
		{
			name: "final theory over maximum",
			requestBody: map[string]interface{}{
				"student_id": student.StudentID, "subject_id": subjectID,
				"semester": "Fall", "academic_year": "2024-2025",
				"final_theory": 41,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown subject",
			requestBody: map[string]interface{}{
				"student_id": student.StudentID, "subject_id": "missing",
				"semester": "Fall", "academic_year": "2024-2025",
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(testutil.MakeRequest("POST", "/api/grades", tt.requestBody, nil), admin)
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp map[string]interface{}
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUpdateAndDeleteGrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewGradeHandler(db)

	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	subjectID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)
	gradeID := testutil.CreateTestGrade(t, db, student.StudentID, subjectID, grading.Components{MidtermTheory: 5})

	body := map[string]interface{}{
		"semester": "Fall", "academic_year": "2024-2025",
		"midterm_theory": 30, "midterm_practical": 10, "final_theory": 40, "final_practical": 20,
	}
	req := asUser(testutil.MakeRequest("PUT", "/api/grades/"+gradeID, body, nil), admin)
	req.SetPathValue("id", gradeID)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var res models.GradeResult
	testutil.AssertJSON(t, w, &res)
	if res.TotalGrade != 100 || res.LetterGrade != "A+" {
		t.Errorf("Expected 100/A+, got %v/%s", res.TotalGrade, res.LetterGrade)
	}

	req = asUser(httptest.NewRequest("DELETE", "/api/grades/"+gradeID, nil), admin)
	req.SetPathValue("id", gradeID)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = asUser(testutil.MakeRequest("PUT", "/api/grades/"+gradeID, body, nil), admin)
	req.SetPathValue("id", gradeID)
	w = httptest.NewRecorder()
	handler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListGrades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewGradeHandler(db)

	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	sara := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	omar := testutil.CreateTestStudent(t, db, "Omar", "ST002")
	dbID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)
	netID := testutil.CreateTestSubject(t, db, "Networks", "CS301", 4)
	testutil.CreateTestGrade(t, db, sara.StudentID, dbID, grading.Components{FinalTheory: 40})
	testutil.CreateTestGrade(t, db, omar.StudentID, dbID, grading.Components{FinalTheory: 35})
	testutil.CreateTestGrade(t, db, omar.StudentID, netID, grading.Components{FinalTheory: 20})

	list := func(t *testing.T, path string, caller auth.Principal) []models.GradeView {
		t.Helper()
		req := asUser(httptest.NewRequest("GET", path, nil), caller)
		w := httptest.NewRecorder()
		handler.List(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var grades []models.GradeView
		testutil.AssertJSON(t, w, &grades)
		return grades
	}

	if got := list(t, "/api/grades", admin); len(got) != 3 {
		t.Errorf("Admin expected 3 grades, got %d", len(got))
	}
	if got := list(t, "/api/grades?subject_id="+dbID, admin); len(got) != 2 {
		t.Errorf("Subject filter expected 2 grades, got %d", len(got))
	}

	own := list(t, "/api/grades?student_id="+sara.StudentID, omar)
	if len(own) != 2 {
		t.Fatalf("Student expected own 2 grades, got %d", len(own))
	}
	for _, g := range own {
		if g.StudentID != omar.StudentID {
			t.Error("Student received another student's grade")
		}
	}
	if own[0].SubjectName != "Databases" || own[0].Rank == nil || *own[0].Rank != 2 || *own[0].TotalStudents != 2 {
		t.Errorf("Expected Databases ranked 2 of 2, got %+v", own[0])
	}
}

func TestDashboards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewGradeHandler(db)

	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	sara := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	subjectID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)
	testutil.CreateTestGrade(t, db, sara.StudentID, subjectID,
		grading.Components{MidtermTheory: 30, MidtermPractical: 10, FinalTheory: 40, FinalPractical: 15})

	req := asUser(httptest.NewRequest("GET", "/api/student-dashboard", nil), sara)
	w := httptest.NewRecorder()
	handler.MyDashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var dash models.Dashboard
	testutil.AssertJSON(t, w, &dash)
	if dash.Student.ID != sara.StudentID || dash.GPA != 4.0 || dash.TotalCredits != 3 || dash.Standing != "excellent" {
		t.Errorf("Unexpected dashboard %+v", dash)
	}

	req = asUser(httptest.NewRequest("GET", "/api/students/"+sara.StudentID+"/dashboard", nil), admin)
	req.SetPathValue("id", sara.StudentID)
	w = httptest.NewRecorder()
	handler.StudentDashboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = asUser(httptest.NewRequest("GET", "/api/students/missing/dashboard", nil), admin)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.StudentDashboard(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
