package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndCurrentUser(t *testing.T) {
	app := setupApp(t)
	cookie := loginAdmin(t, app)

	resp, payload := doJSON(t, app, "GET", "/api/auth/user", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", payload["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/auth/login",
		`{"username":"admin","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/vehicles/active", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/vehicles/entry/AUTH01", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterNewOperator(t *testing.T) {
	app := setupApp(t)

	resp, payload := doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"booth1","email":"booth1@parksys.local","password":"parkpass"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "booth1", payload["username"])

	// Duplicate username is rejected.
	resp, _ = doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"booth1","email":"other@parksys.local","password":"parkpass"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// New account can log in and use operator routes.
	resp, _ = doJSON(t, app, "POST", "/api/auth/login",
		`{"username":"booth1","password":"parkpass"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	resp, _ = doJSON(t, app, "GET", "/api/vehicles/active", "", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp, payload := doJSON(t, app, "POST", "/api/auth/register",
		`{"username":"ab","email":"not-an-email","password":"123"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", payload["error"])
	assert.NotEmpty(t, payload["messages"])
}
