// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gradebook/grading"
	"github.com/danielhkuo/gradebook/middleware"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "gradebook API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/nowhere", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAccessControl(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	admin := testutil.CreateTestAdmin(t, db, "admin1", "pw")
	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	pollID, _ := testutil.CreateTestPoll(t, db, admin, true, "A", "B")

	adminHeader := testutil.BearerHeader(t, admin)
	studentHeader := testutil.BearerHeader(t, student)

	testCases := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"no token", "GET", "/api/subjects", nil, http.StatusUnauthorized},
		{"malformed token", "GET", "/api/subjects", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"student reads subjects", "GET", "/api/subjects", studentHeader, http.StatusOK},
		{"student lists students", "GET", "/api/students", studentHeader, http.StatusForbidden},
		{"admin lists students", "GET", "/api/students", adminHeader, http.StatusOK},
		{"student reads own grades", "GET", "/api/grades", studentHeader, http.StatusOK},
		{"student submits grade", "POST", "/api/grades", studentHeader, http.StatusForbidden},
		{"admin reads student dashboard route", "GET", "/api/student-dashboard", adminHeader, http.StatusForbidden},
		{"student dashboard", "GET", "/api/student-dashboard", studentHeader, http.StatusOK},
		{"student reads results", "GET", "/api/polls/" + pollID + "/results", studentHeader, http.StatusForbidden},
		{"admin votes", "POST", "/api/polls/" + pollID + "/vote", adminHeader, http.StatusForbidden},
		{"student deletes poll", "DELETE", "/api/polls/" + pollID, studentHeader, http.StatusForbidden},
		{"current user", "GET", "/api/user", studentHeader, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, tc.headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if w.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("Expected request id header on API response")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/api/login"},
		{"PATCH", "/api/grades/some-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestLoginThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	student := testutil.CreateTestStudent(t, db, "Sara", "ST001")
	subjectID := testutil.CreateTestSubject(t, db, "Databases", "CS201", 3)
	testutil.CreateTestGrade(t, db, student.StudentID, subjectID,
		grading.Components{MidtermTheory: 20, MidtermPractical: 5, FinalTheory: 30, FinalPractical: 10})

	req := testutil.MakeRequest("POST", "/api/login", models.LoginRequest{Username: "ST001", Password: "ST001"}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)

	req = testutil.MakeRequest("GET", "/api/student-dashboard", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var dash models.Dashboard
	testutil.AssertJSON(t, w, &dash)
	if len(dash.Grades) != 1 || dash.Grades[0].TotalGrade != 65 || dash.Grades[0].LetterGrade != "C+" {
		t.Errorf("Unexpected dashboard grades %+v", dash.Grades)
	}
	if dash.GPA != 2.0 {
		t.Errorf("Expected GPA 2.0, got %v", dash.GPA)
	}
}

func TestCORSPreflight(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := middleware.CORS(NewRouter(db, testutil.GetTestConfig()))

	req := httptest.NewRequest("OPTIONS", "/api/grades", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
}
