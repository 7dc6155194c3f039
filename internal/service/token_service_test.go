package service_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arjunm/coursehub/internal/service"
	"github.com/arjunm/coursehub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueValidate(t *testing.T) {
	tokens := service.NewTokenService(testutil.TestConfig())
	userID := uuid.New()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_Validate_Invalid(t *testing.T) {
	tokens := service.NewTokenService(testutil.TestConfig())

	otherCfg := testutil.TestConfig()
	otherCfg.JWTSecret = "a-completely-different-secret"
	otherTokens := service.NewTokenService(otherCfg)

	expiredCfg := testutil.TestConfig()
	expiredCfg.JWTExpirationHours = -1
	expiredTokens := service.NewTokenService(expiredCfg)

	validFromOther, err := otherTokens.Issue(uuid.New())
	require.NoError(t, err)

	expired, err := expiredTokens.Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "notavalidjwt"},
		{name: "garbage segments", token: "aaa.bbb.ccc"},
		{name: "signed with wrong secret", token: validFromOther},
		{name: "expired token", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Validate(tt.token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestTokenService_Cookies(t *testing.T) {
	tokens := service.NewTokenService(testutil.TestConfig())

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	tokens.SetCookie(rec, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, service.SessionCookieName, cookie.Name)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Greater(t, cookie.MaxAge, 0)

	rec = httptest.NewRecorder()
	tokens.ClearCookie(rec)

	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
