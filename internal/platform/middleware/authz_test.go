// Copyright (c) 2026 DSMovie. All rights reserved.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/ctxutil"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/middleware"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
)

// stubVerifier resolves a fixed token table instead of verifying signatures.
type stubVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if claims, ok := v.tokens[tokenStr]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

func newVerifier() *stubVerifier {
	return &stubVerifier{tokens: map[string]*sec.AuthClaims{
		"admin-token":  {UserID: "u1", Username: "maria", Role: string(sec.RoleAdmin)},
		"client-token": {UserID: "u2", Username: "alex", Role: string(sec.RoleClient)},
	}}
}

// echoHandler records whether it was reached and with which identity.
func echoHandler(reached *bool, claims **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*reached = true
		*claims = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate verifies anonymous passthrough, claim injection, and the 401
response for tokens that cannot be verified.
*/
func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantReached bool
		wantRole    string
	}{
		{"no_header_is_anonymous", "", http.StatusOK, true, ""},
		{"valid_admin_token", "Bearer admin-token", http.StatusOK, true, "admin"},
		{"valid_client_token", "Bearer client-token", http.StatusOK, true, "client"},
		{"invalid_token", "Bearer admin-tokeninvalid", http.StatusUnauthorized, false, ""},
		{"malformed_header", "admin-token", http.StatusUnauthorized, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			var claims *sec.AuthClaims

			handler := middleware.Authenticate(newVerifier())(echoHandler(&reached, &claims))

			request := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantReached, reached)

			if tt.wantRole != "" {
				assert.NotNil(t, claims)
				assert.Equal(t, tt.wantRole, claims.Role)
			}
		})
	}
}

/*
TestRequireCapability exercises the capability gate behind Authenticate for
each identity state, independent of catalog content.
*/
func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		capability sec.Capability
		wantStatus int
	}{
		{"insert_movie_admin", "Bearer admin-token", sec.CapabilityInsertMovie, http.StatusOK},
		{"insert_movie_client", "Bearer client-token", sec.CapabilityInsertMovie, http.StatusForbidden},
		{"insert_movie_anonymous", "", sec.CapabilityInsertMovie, http.StatusUnauthorized},
		{"insert_movie_invalid_token", "Bearer bogus", sec.CapabilityInsertMovie, http.StatusUnauthorized},
		{"submit_score_client", "Bearer client-token", sec.CapabilitySubmitScore, http.StatusOK},
		{"submit_score_anonymous", "", sec.CapabilitySubmitScore, http.StatusUnauthorized},
		{"read_catalog_anonymous", "", sec.CapabilityReadCatalog, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			var claims *sec.AuthClaims

			chain := middleware.Authenticate(newVerifier())(
				middleware.RequireCapability(tt.capability)(echoHandler(&reached, &claims)),
			)

			request := httptest.NewRequest(http.MethodPost, "/movies", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
