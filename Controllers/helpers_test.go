package Controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"ParkSys/FiberConfig"
	"ParkSys/Models"
)

// setupApp opens a fresh temp database and builds the route table over it.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "parksys.db") + "?_busy_timeout=10000&_txlock=immediate"
	require.NoError(t, Models.ConnectTo(dsn))

	app := fiber.New()
	FiberConfig.SetupRoutes(app, Models.DB)
	return app
}

// loginAdmin signs in as the seeded admin account and returns the jwt cookie.
func loginAdmin(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/auth/login",
		`{"username":"admin","password":"123456"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			return cookie
		}
	}
	t.Fatal("login response did not set the jwt cookie")
	return nil
}

// doJSON runs a request through the app and decodes a JSON body when one
// comes back.
func doJSON(t *testing.T, app *fiber.App, method, target, body string, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(data, &payload))
	}
	return resp, payload
}

// vehicleOf pulls the merged session view out of an entry/exit response.
func vehicleOf(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	vehicle, ok := payload["vehicle"].(map[string]interface{})
	require.True(t, ok, "response has no vehicle object: %v", payload)
	return vehicle
}
