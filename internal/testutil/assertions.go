package testutil

import (
	"encoding/json"
	"net/http"
	"testing"
)

// AssertJSONResponse decodes a JSON response body into target, failing the
// test on decode errors.
func AssertJSONResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
}

// SessionCookie extracts the session cookie from a response, or fails.
func SessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("response has no session cookie")
	return nil
}
