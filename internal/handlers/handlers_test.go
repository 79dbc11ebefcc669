package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/auth"
	"github.com/collabsphere/collabsphere/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testUser describes a registration payload; zero fields fall back to
// sensible defaults so tests only spell out what they care about.
type testUser struct {
	FullName    string
	Email       string
	Password    string
	Institution string
	Department  string
	Year        string
	Skills      []string
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	db.DB = gormDB
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func registerPayload(u testUser) map[string]interface{} {
	if u.FullName == "" {
		u.FullName = "Test User"
	}
	if u.Password == "" {
		u.Password = "password123"
	}
	if u.Institution == "" {
		u.Institution = "Tech University"
	}
	if u.Department == "" {
		u.Department = "Computer Science"
	}
	if u.Year == "" {
		u.Year = "1st Year"
	}
	if len(u.Skills) == 0 {
		u.Skills = []string{"Python"}
	}

	return map[string]interface{}{
		"fullName":    u.FullName,
		"email":       u.Email,
		"password":    u.Password,
		"institution": u.Institution,
		"department":  u.Department,
		"year":        u.Year,
		"skills":      u.Skills,
	}
}

// registerUser creates an account and returns its bearer token and id.
func registerUser(t *testing.T, r *gin.Engine, u testUser) (string, uint) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", registerPayload(u), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)

	id, ok := user["id"].(float64)
	require.True(t, ok)

	return token, uint(id)
}

// createProject makes a project owned by the token's user and returns
// its id.
func createProject(t *testing.T, r *gin.Engine, token, title string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", map[string]interface{}{"title": title}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	project, ok := body["project"].(map[string]interface{})
	require.True(t, ok)

	id, ok := project["id"].(float64)
	require.True(t, ok)

	return uint(id)
}
