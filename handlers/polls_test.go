// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/societly/server/cliparse"
	"github.com/societly/server/middleware"
	"github.com/societly/server/models"
	"github.com/societly/server/testutil"
	"github.com/societly/server/voting"
)

// authedRequest builds a request carrying the principal's bearer token.
// Handlers that take a poll ID read it from the path value, so callers
// set it explicitly with req.SetPathValue.
func authedRequest(t *testing.T, cfg cliparse.Config, p models.Principal, method, path string, body interface{}) *http.Request {
	t.Helper()
	token := testutil.PrincipalToken(t, cfg, p)
	return testutil.MakeRequest(method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

func TestCreatePollHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	societyID := testutil.CreateTestSociety(t, db, "Greenfield Heights")
	admin := testutil.CreateTestResident(t, db, societyID, models.RoleAdmin)
	resident := testutil.CreateTestResident(t, db, societyID, models.RoleResident)

	svc := voting.NewService(db, nil)
	handler := middleware.WithPrincipal(cfg.TokenSecret, NewPollHandler(svc).CreatePoll)
	endDate := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name           string
		principal      models.Principal
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.PollWithOptions)
	}{
		{
			name:      "valid poll creation",
			principal: admin,
			requestBody: models.CreatePollRequest{
				Title:       "Repaint the lobby?",
				Description: "Budget approved last meeting",
				PollType:    models.TypeYesNo,
				EndDate:     endDate,
				Options:     []string{"Yes", "No"},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.PollWithOptions) {
				if resp.Poll.ID == "" {
					t.Error("Expected non-empty poll id")
				}
				if resp.Poll.Status != models.StatusDraft {
					t.Errorf("Expected status 'draft', got '%s'", resp.Poll.Status)
				}
				if len(resp.Options) != 2 {
					t.Errorf("Expected 2 options, got %d", len(resp.Options))
				}

				// Verify the poll landed in the database
				var status string
				err := db.QueryRow("SELECT status FROM poll WHERE id = $1", resp.Poll.ID).Scan(&status)
				if err != nil {
					t.Fatalf("Failed to query poll: %v", err)
				}
				if status != models.StatusDraft {
					t.Errorf("Expected stored status 'draft', got '%s'", status)
				}
			},
		},
		{
			name:      "resident forbidden",
			principal: resident,
			requestBody: models.CreatePollRequest{
				Title:   "Resident poll",
				EndDate: endDate,
				Options: []string{"A", "B"},
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "missing title",
			principal: admin,
			requestBody: models.CreatePollRequest{
				EndDate: endDate,
				Options: []string{"A", "B"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "too few options",
			principal: admin,
			requestBody: models.CreatePollRequest{
				Title:   "One option",
				EndDate: endDate,
				Options: []string{"Only"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			principal:      admin,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.requestBody.(string); ok {
				req = httptest.NewRequest("POST", "/polls", strings.NewReader(str))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+testutil.PrincipalToken(t, cfg, tt.principal))
			} else {
				req = authedRequest(t, cfg, tt.principal, "POST", "/polls", tt.requestBody)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.PollWithOptions
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
			Title:   "No auth",
			EndDate: endDate,
			Options: []string{"A", "B"},
		}, nil)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestListPollsHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	societyID := testutil.CreateTestSociety(t, db, "Greenfield Heights")
	otherSociety := testutil.CreateTestSociety(t, db, "Lakeside Court")
	admin := testutil.CreateTestResident(t, db, societyID, models.RoleAdmin)
	otherAdmin := testutil.CreateTestResident(t, db, otherSociety, models.RoleAdmin)
	resident := testutil.CreateTestResident(t, db, societyID, models.RoleResident)

	future := time.Now().Add(24 * time.Hour)
	pollID := testutil.CreateTestPoll(t, db, societyID, admin.ID, "active", future)
	optionID := testutil.AddTestOption(t, db, pollID, "Yes", 0)
	testutil.AddTestOption(t, db, pollID, "No", 1)
	testutil.CreateTestPoll(t, db, otherSociety, otherAdmin.ID, "active", future)

	testutil.CastTestVote(t, db, pollID, resident.ID, optionID)

	svc := voting.NewService(db, nil)
	handler := middleware.WithPrincipal(cfg.TokenSecret, NewPollHandler(svc).ListPolls)

	t.Run("resident sees own society with vote state", func(t *testing.T) {
		req := authedRequest(t, cfg, resident, "GET", "/polls", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var items []models.PollListItem
		testutil.AssertJSON(t, w, &items)
		if len(items) != 1 {
			t.Fatalf("Expected 1 poll, got %d", len(items))
		}
		if items[0].Poll.ID != pollID {
			t.Errorf("Expected poll %s, got %s", pollID, items[0].Poll.ID)
		}
		if !items[0].HasVoted {
			t.Error("Expected has_voted true")
		}
		if items[0].MyVote == nil {
			t.Error("Expected my_vote in listing")
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls", nil, nil)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestSetStatusHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	societyID := testutil.CreateTestSociety(t, db, "Greenfield Heights")
	admin := testutil.CreateTestResident(t, db, societyID, models.RoleAdmin)
	resident := testutil.CreateTestResident(t, db, societyID, models.RoleResident)

	svc := voting.NewService(db, nil)
	handler := middleware.WithPrincipal(cfg.TokenSecret, NewPollHandler(svc).SetStatus)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name           string
		principal      models.Principal
		fromStatus     string
		toStatus       string
		expectedStatus int
	}{
		{"admin activates draft", admin, "draft", models.StatusActive, http.StatusOK},
		{"admin closes active", admin, "active", models.StatusClosed, http.StatusOK},
		{"reopening closed rejected", admin, "closed", models.StatusActive, http.StatusConflict},
		{"resident forbidden", resident, "draft", models.StatusActive, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pollID := testutil.CreateTestPoll(t, db, societyID, admin.ID, tt.fromStatus, future)

			req := authedRequest(t, cfg, tt.principal, "POST", "/polls/"+pollID+"/status",
				models.SetStatusRequest{Status: tt.toStatus})
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()

			handler(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var poll models.Poll
				testutil.AssertJSON(t, w, &poll)
				if poll.Status != tt.toStatus {
					t.Errorf("Expected status %s, got %s", tt.toStatus, poll.Status)
				}
			}
		})
	}

	t.Run("unknown poll", func(t *testing.T) {
		req := authedRequest(t, cfg, admin, "POST", "/polls/no-such-poll/status",
			models.SetStatusRequest{Status: models.StatusActive})
		req.SetPathValue("id", "no-such-poll")
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing status field", func(t *testing.T) {
		pollID := testutil.CreateTestPoll(t, db, societyID, admin.ID, "draft", future)
		req := authedRequest(t, cfg, admin, "POST", "/polls/"+pollID+"/status",
			models.SetStatusRequest{})
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
