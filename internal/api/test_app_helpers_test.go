package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/teachflow/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "teachflow-api-test.db"), zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, testSecretKey, false, zerolog.Nop())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestLogger(zerolog.Nop()))
	RegisterRoutes(app, handler)
	return app, database
}

type testResponse struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
	header  http.Header
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any, authCookie string) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookieName+"="+authCookie)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return testResponse{
		status:  response.StatusCode,
		body:    decoded,
		cookies: response.Cookies(),
		header:  response.Header,
	}
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	return registerTestUserInTimezone(t, app, email, "UTC")
}

func registerTestUserInTimezone(t *testing.T, app *fiber.App, email string, timezone string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": "StrongPass1",
		"name":     "Teacher",
		"timezone": timezone,
	}, "")
	require.Equal(t, http.StatusCreated, response.status, response.body)
	cookie := responseCookieValue(response.cookies, authCookieName)
	require.NotEmpty(t, cookie)
	return cookie
}

func objectField(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	value, ok := body[key].(map[string]any)
	require.True(t, ok, "expected object at %q in %v", key, body)
	return value
}

func listField(t *testing.T, body map[string]any, key string) []any {
	t.Helper()

	value, ok := body[key].([]any)
	require.True(t, ok, "expected list at %q in %v", key, body)
	return value
}

type teachingFixture struct {
	contractorID string
	studentID    string
}

func createTeachingFixture(t *testing.T, app *fiber.App, cookie string) teachingFixture {
	t.Helper()

	contractor := doJSON(t, app, http.MethodPost, "/api/contractors", fiber.Map{
		"name":                "Language School",
		"default_hourly_rate": 50,
		"currency":            "BRL",
		"payment_frequency":   "monthly",
		"payment_terms_days":  30,
	}, cookie)
	require.Equal(t, http.StatusCreated, contractor.status, contractor.body)
	contractorID := objectField(t, contractor.body, "contractor")["id"].(string)

	student := doJSON(t, app, http.MethodPost, "/api/students", fiber.Map{
		"name":          "Ana",
		"contractor_id": contractorID,
	}, cookie)
	require.Equal(t, http.StatusCreated, student.status, student.body)
	studentID := objectField(t, student.body, "student")["id"].(string)

	return teachingFixture{contractorID: contractorID, studentID: studentID}
}
