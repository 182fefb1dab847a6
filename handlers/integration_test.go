// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gradebook/auth"
	"github.com/danielhkuo/gradebook/models"
	"github.com/danielhkuo/gradebook/testutil"
)

// TestFullTermWorkflow walks a term end to end:
// 1. Admin creates students and a subject
// 2. Admin records grades
// 3. A student logs in with their student number
// 4. The student reads their dashboard with rank and GPA
// 5. Admin opens a poll, students vote, one changes their mind
// 6. Admin reads results and deletes the poll
func TestFullTermWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := NewAuthHandler(db, cfg)
	studentHandler := NewStudentHandler(db)
	subjectHandler := NewSubjectHandler(db)
	gradeHandler := NewGradeHandler(db)
	pollHandler := NewPollHandler(db)
	votingHandler := NewVotingHandler(db)
	resultsHandler := NewResultsHandler(db)

	admin := testutil.CreateTestAdmin(t, db, "registrar", "registrar-pw")

	// Step 1: students and subject
	studentIDs := map[string]string{}
	for _, s := range []struct{ name, number string }{
		{"Amal Said", "ST001"},
		{"Badr Nasser", "ST002"},
	} {
		req := asUser(testutil.MakeRequest("POST", "/api/students", models.StudentRequest{
			Name: s.name, StudentNumber: s.number, Class: "Class 1", Department: "CS",
		}, nil), admin)
		w := httptest.NewRecorder()
		studentHandler.Create(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 1 - create student %s failed: %d - %s", s.number, w.Code, w.Body.String())
		}
		var resp models.CreatedResponse
		testutil.AssertJSON(t, w, &resp)
		studentIDs[s.number] = resp.ID
	}

	req := asUser(testutil.MakeRequest("POST", "/api/subjects", models.SubjectRequest{
		Name: "Databases", Code: "CS201", CreditHours: 3,
	}, nil), admin)
	w := httptest.NewRecorder()
	subjectHandler.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - create subject failed: %d - %s", w.Code, w.Body.String())
	}
	var subject models.CreatedResponse
	testutil.AssertJSON(t, w, &subject)

	// Step 2: grades (Amal 86, Badr 92)
	for number, scores := range map[string][4]float64{
		"ST001": {25, 8, 35, 18},
		"ST002": {28, 9, 37, 18},
	} {
		body := map[string]interface{}{
			"student_id": studentIDs[number], "subject_id": subject.ID,
			"semester": "Fall", "academic_year": "2024-2025",
			"midterm_theory": scores[0], "midterm_practical": scores[1],
			"final_theory": scores[2], "final_practical": scores[3],
		}
		req := asUser(testutil.MakeRequest("POST", "/api/grades", body, nil), admin)
		w := httptest.NewRecorder()
		gradeHandler.Submit(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - grade for %s failed: %d - %s", number, w.Code, w.Body.String())
		}
	}

	// Step 3: student login
	req = testutil.MakeRequest("POST", "/api/login", models.LoginRequest{Username: "ST001", Password: "ST001"}, nil)
	w = httptest.NewRecorder()
	authHandler.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - login failed: %d - %s", w.Code, w.Body.String())
	}
	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	amal, err := tokens.Validate(login.Token)
	if err != nil {
		t.Fatalf("Step 3 - token invalid: %v", err)
	}
	if !amal.IsStudent() || amal.StudentID != studentIDs["ST001"] {
		t.Fatalf("Step 3 - unexpected principal %+v", amal)
	}

	// Step 4: dashboard
	req = asUser(httptest.NewRequest("GET", "/api/student-dashboard", nil), amal)
	w = httptest.NewRecorder()
	gradeHandler.MyDashboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var dash models.Dashboard
	testutil.AssertJSON(t, w, &dash)
	if len(dash.Grades) != 1 {
		t.Fatalf("Step 4 - expected 1 grade, got %d", len(dash.Grades))
	}
	g := dash.Grades[0]
	if g.TotalGrade != 86 || g.LetterGrade != "A-" || *g.Rank != 2 || *g.TotalStudents != 2 {
		t.Errorf("Step 4 - unexpected grade %+v", g)
	}
	if dash.GPA != 3.3 || dash.Standing != "very good" {
		t.Errorf("Step 4 - expected GPA 3.3 very good, got %v %s", dash.GPA, dash.Standing)
	}

	// Step 5: poll and votes
	req = asUser(testutil.MakeRequest("POST", "/api/polls", models.CreatePollRequest{
		Title: "Review session", Options: []string{"Monday", "Wednesday"},
	}, nil), admin)
	w = httptest.NewRecorder()
	pollHandler.CreatePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var poll models.CreatedResponse
	testutil.AssertJSON(t, w, &poll)

	req = asUser(httptest.NewRequest("GET", "/api/polls/"+poll.ID, nil), amal)
	req.SetPathValue("id", poll.ID)
	w = httptest.NewRecorder()
	pollHandler.GetPoll(w, req)
	var detail models.PollDetail
	testutil.AssertJSON(t, w, &detail)
	monday, wednesday := detail.Options[0].ID, detail.Options[1].ID

	badr := auth.Principal{UserID: "badr-user", Username: "ST002", Role: auth.RoleStudent, StudentID: studentIDs["ST002"]}
	for _, v := range []struct {
		who    auth.Principal
		option string
	}{
		{amal, monday},
		{badr, monday},
		{amal, wednesday},
	} {
		req := asUser(testutil.MakeRequest("POST", "/api/polls/"+poll.ID+"/vote", models.VoteRequest{OptionID: v.option}, nil), v.who)
		req.SetPathValue("id", poll.ID)
		w := httptest.NewRecorder()
		votingHandler.Vote(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	// Step 6: results and delete
	req = asUser(httptest.NewRequest("GET", "/api/polls/"+poll.ID+"/results", nil), admin)
	req.SetPathValue("id", poll.ID)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)
	var results []models.PollResult
	testutil.AssertJSON(t, w, &results)
	if len(results) != 2 {
		t.Fatalf("Step 6 - expected 2 votes, got %d", len(results))
	}
	if results[0].OptionText != "Monday" || results[0].StudentNumber != "ST002" ||
		results[1].OptionText != "Wednesday" || results[1].StudentNumber != "ST001" {
		t.Errorf("Step 6 - unexpected results %+v", results)
	}

	req = asUser(httptest.NewRequest("DELETE", "/api/polls/"+poll.ID, nil), admin)
	req.SetPathValue("id", poll.ID)
	w = httptest.NewRecorder()
	pollHandler.DeletePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if n := testutil.CountRows(t, db, "poll_options", ""); n != 0 {
		t.Errorf("Step 6 - expected options removed, got %d", n)
	}
}
