package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/arjunm/coursehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Signup(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful signup",
			request: map[string]string{
				"name":     "New User",
				"email":    "newuser@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				cookie := testutil.SessionCookie(t, resp)
				assert.NotEmpty(t, cookie.Value)
				assert.True(t, cookie.HttpOnly)

				var result struct {
					User struct {
						Email string `json:"email"`
						Role  string `json:"role"`
					} `json:"user"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "newuser@example.com", result.User.Email)
				assert.Equal(t, "student", result.User.Role)
			},
		},
		{
			name: "email is normalized",
			request: map[string]string{
				"name":     "Caps User",
				"email":    "A@Example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					User struct {
						Email string `json:"email"`
					} `json:"user"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "a@example.com", result.User.Email)
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"name":     "No Email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			request: map[string]string{
				"name":     "Short",
				"email":    "short@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"name":     "Dup",
				"email":    "existing@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "admin role rejected",
			request: map[string]string{
				"name":     "Sneaky",
				"email":    "sneaky@example.com",
				"password": "password123",
				"role":     "admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/users/signup"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_SigninAndProfile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().
		WithEmail("loginuser@example.com").
		Build(t, ts.DB.DB)

	// Wrong password is a 401.
	body, _ := json.Marshal(map[string]string{
		"email":    user.Email,
		"password": "wrong-password",
	})
	resp, err := http.Post(ts.APIURL("/users/signin"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct credentials set a session cookie.
	body, _ = json.Marshal(map[string]string{
		"email":    "LoginUser@Example.COM", // case-insensitive lookup
		"password": password,
	})
	resp, err = http.Post(ts.APIURL("/users/signin"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := testutil.SessionCookie(t, resp)

	// Profile without the cookie is rejected.
	req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/users/profile"), nil)
	noAuth, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	noAuth.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, noAuth.StatusCode)

	// Profile with the cookie resolves the logged-in user.
	req, _ = http.NewRequest(http.MethodGet, ts.APIURL("/users/profile"), nil)
	req.AddCookie(cookie)
	withAuth, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer withAuth.Body.Close()
	require.Equal(t, http.StatusOK, withAuth.StatusCode)

	var profile struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.AssertJSONResponse(t, withAuth, &profile)
	assert.Equal(t, user.ID.String(), profile.User.ID)
}

func TestAuthHandler_Signout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.APIURL("/users/signout"), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Sign-out overwrites the cookie with an expired empty value.
	cookie := testutil.SessionCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
