package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSendRequestCreatesNotification(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, _ := registerUser(t, r, testUser{FullName: "Alice Johnson", Email: "alice@university.edu"})
	bobToken, bobID := registerUser(t, r, testUser{FullName: "Bob Smith", Email: "bob@university.edu"})

	projectID := createProject(t, r, aliceToken, "Capstone")

	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": bobID,
		"project_id":   projectID,
		"message":      "Want to collaborate?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, decodeBody(t, w)["request_id"])

	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	notifications := decodeBody(t, w)["notifications"].([]interface{})
	require.Len(t, notifications, 1)

	notification := notifications[0].(map[string]interface{})
	require.Equal(t, "incoming_request", notification["type"])
	require.Equal(t, "Alice Johnson", notification["sender"])
	require.Equal(t, "Capstone", notification["project"])
	require.Equal(t, false, notification["is_read"])
}

// Snapshots stay frozen even when the source rows change afterwards.
func TestNotificationSnapshotsAreNotLiveUpdated(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, _ := registerUser(t, r, testUser{FullName: "Alice Johnson", Email: "alice@university.edu"})
	bobToken, bobID := registerUser(t, r, testUser{FullName: "Bob Smith", Email: "bob@university.edu"})

	projectID := createProject(t, r, aliceToken, "Capstone")

	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": bobID,
		"project_id":   projectID,
		"message":      "Want to collaborate?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/auth/profile", map[string]interface{}{
		"fullName": "Alice Renamed",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", projectID), map[string]interface{}{
		"title": "Renamed Project",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, bobToken)
	notification := decodeBody(t, w)["notifications"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "Alice Johnson", notification["sender"])
	require.Equal(t, "Capstone", notification["project"])
}

func TestSendRequestValidation(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, aliceID := registerUser(t, r, testUser{Email: "alice@university.edu"})

	// Missing message.
	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": aliceID + 1,
	}, aliceToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Self-request.
	w = doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": aliceID,
		"message":      "hi me",
	}, aliceToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown recipient.
	w = doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": aliceID + 999,
		"message":      "anyone there?",
	}, aliceToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// The full collaboration flow: A invites B onto a project, B accepts,
// and the project shows up in B's list. A second accept finds nothing.
func TestCollaborationFlow(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, _ := registerUser(t, r, testUser{
		FullName: "Alice Johnson",
		Email:    "alice@university.edu",
		Skills:   []string{"Python"},
	})
	bobToken, bobID := registerUser(t, r, testUser{
		FullName: "Bob Smith",
		Email:    "bob@university.edu",
		Skills:   []string{"React"},
	})

	projectID := createProject(t, r, aliceToken, "Capstone")

	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": bobID,
		"project_id":   projectID,
		"message":      "Join me?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// B sees exactly one pending request.
	w = doRequest(t, r, http.MethodGet, "/api/requests/received", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	requests := decodeBody(t, w)["requests"].([]interface{})
	require.Len(t, requests, 1)

	request := requests[0].(map[string]interface{})
	require.Equal(t, "pending", request["status"])
	require.Equal(t, "Alice Johnson", request["sender_name"])
	require.Equal(t, "Capstone", request["project_title"])

	requestID := uint(request["id"].(float64))

	// A sees it in the outbox.
	w = doRequest(t, r, http.MethodGet, "/api/requests/sent", nil, aliceToken)
	require.Len(t, decodeBody(t, w)["requests"].([]interface{}), 1)

	// B accepts.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/requests/%d/accept", requestID), nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	// Exactly one membership row exists.
	var memberships int64
	require.NoError(t, db.DB.Model(&models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", bobID, projectID).
		Count(&memberships).Error)
	require.EqualValues(t, 1, memberships)

	// The request left the pending inbox.
	w = doRequest(t, r, http.MethodGet, "/api/requests/received", nil, bobToken)
	require.Empty(t, decodeBody(t, w)["requests"])

	// B's project list now includes A's project.
	w = doRequest(t, r, http.MethodGet, "/api/projects", nil, bobToken)
	projects := decodeBody(t, w)["projects"].([]interface{})
	require.Len(t, projects, 1)
	require.Equal(t, "Capstone", projects[0].(map[string]interface{})["title"])

	// A got no notification out of the accept.
	w = doRequest(t, r, http.MethodGet, "/api/notifications", nil, aliceToken)
	require.Empty(t, decodeBody(t, w)["notifications"])

	// A second accept finds no pending request and changes nothing.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/requests/%d/accept", requestID), nil, bobToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, db.DB.Model(&models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", bobID, projectID).
		Count(&memberships).Error)
	require.EqualValues(t, 1, memberships)
}

func TestRejectRequest(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, _ := registerUser(t, r, testUser{Email: "alice@university.edu"})
	bobToken, bobID := registerUser(t, r, testUser{Email: "bob@university.edu"})

	projectID := createProject(t, r, aliceToken, "Capstone")

	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": bobID,
		"project_id":   projectID,
		"message":      "Join me?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	requestID := uint(decodeBody(t, w)["request_id"].(float64))

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/requests/%d/reject", requestID), nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	// No membership was created and the status transition is terminal.
	var memberships int64
	require.NoError(t, db.DB.Model(&models.ProjectMembership{}).Count(&memberships).Error)
	require.EqualValues(t, 0, memberships)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/requests/%d/accept", requestID), nil, bobToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOnlyRecipientMayAccept(t *testing.T) {
	r := setupTestRouter(t)

	aliceToken, _ := registerUser(t, r, testUser{Email: "alice@university.edu"})
	_, bobID := registerUser(t, r, testUser{Email: "bob@university.edu"})
	carolToken, _ := registerUser(t, r, testUser{Email: "carol@university.edu"})

	projectID := createProject(t, r, aliceToken, "Capstone")

	w := doRequest(t, r, http.MethodPost, "/api/requests/send", map[string]interface{}{
		"recipient_id": bobID,
		"project_id":   projectID,
		"message":      "Join me?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	requestID := uint(decodeBody(t, w)["request_id"].(float64))

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/requests/%d/accept", requestID), nil, carolToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}
