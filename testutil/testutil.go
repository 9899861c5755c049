// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/societly/server/auth"
	"github.com/societly/server/cliparse"
	"github.com/societly/server/db"
	"github.com/societly/server/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// Each call returns an isolated database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4270,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
		TokenTTLMin:  60,
	}
}

// CreateTestSociety creates a society row and returns its ID
func CreateTestSociety(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	societyID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO society (id, name, created_at)
		VALUES ($1, $2, $3)
	`, societyID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test society: %v", err)
	}

	return societyID
}

// CreateTestResident creates a resident with an unusable password hash and
// returns the matching principal. societyID may be empty for super admins.
func CreateTestResident(t *testing.T, conn *sql.DB, societyID, role string) models.Principal {
	t.Helper()

	return createResident(t, conn, societyID, role, "*")
}

// CreateTestResidentWithPassword creates a resident whose password can be
// verified by the login flow.
func CreateTestResidentWithPassword(t *testing.T, conn *sql.DB, societyID, role, email, password string) models.Principal {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	principal := models.Principal{ID: uuid.NewString(), Role: role, SocietyID: societyID}
	insertResident(t, conn, principal, email, hash)
	return principal
}

func createResident(t *testing.T, conn *sql.DB, societyID, role, hash string) models.Principal {
	t.Helper()

	principal := models.Principal{ID: uuid.NewString(), Role: role, SocietyID: societyID}
	insertResident(t, conn, principal, principal.ID+"@test.local", hash)
	return principal
}

func insertResident(t *testing.T, conn *sql.DB, p models.Principal, email, hash string) {
	t.Helper()

	var society any
	if p.SocietyID != "" {
		society = p.SocietyID
	}
	_, err := conn.Exec(`
		INSERT INTO resident (id, society_id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, society, "Test Resident", email, hash, p.Role, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test resident: %v", err)
	}
}

// PrincipalToken issues a signed token for the principal using the test secret
func PrincipalToken(t *testing.T, cfg cliparse.Config, p models.Principal) string {
	t.Helper()

	token, err := auth.IssueToken(p, cfg.TokenSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestPoll creates a poll and returns its ID.
// status should be "draft", "active", or "closed".
func CreateTestPoll(t *testing.T, conn *sql.DB, societyID, creatorID, status string, endDate time.Time) string {
	t.Helper()

	pollID := uuid.NewString()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO poll (id, society_id, creator_id, title, description, poll_type, status, is_anonymous, start_date, end_date, created_at)
		VALUES ($1, $2, $3, 'Test Poll', 'A test poll', 'single_choice', $4, FALSE, $5, $6, $7)
	`, pollID, societyID, creatorID, status, now, endDate.UTC(), now)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// SetPollType updates the poll type of a test poll
func SetPollType(t *testing.T, conn *sql.DB, pollID, pollType string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE poll SET poll_type = $1 WHERE id = $2`, pollType, pollID); err != nil {
		t.Fatalf("Failed to set poll type: %v", err)
	}
}

// SetPollAnonymous marks a test poll as anonymous
func SetPollAnonymous(t *testing.T, conn *sql.DB, pollID string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE poll SET is_anonymous = TRUE WHERE id = $1`, pollID); err != nil {
		t.Fatalf("Failed to set poll anonymous: %v", err)
	}
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string, orderIndex int) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll_option (id, poll_id, option_text, order_index)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, orderIndex)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote inserts a ballot with selections directly
func CastTestVote(t *testing.T, conn *sql.DB, pollID, voterID string, optionIDs ...string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, voter_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, pollID, voterID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	for _, optionID := range optionIDs {
		_, err := conn.Exec(`
			INSERT INTO vote_selection (vote_id, option_id)
			VALUES ($1, $2)
		`, voteID, optionID)
		if err != nil {
			t.Fatalf("Failed to create test vote selection: %v", err)
		}
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
