package movie_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeam10/dsmovie-restassured/internal/catalog/movie"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/metrics"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/middleware"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
)

type stubVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if claims, ok := v.tokens[tokenStr]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

func newTestRouter(t *testing.T) (http.Handler, *movie.MemoryRepository) {
	t.Helper()

	repo := movie.NewMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := movie.NewService(repo, logger, metrics.NewCollector(nil))

	verifier := &stubVerifier{tokens: map[string]*sec.AuthClaims{
		"admin-token":  {UserID: "u1", Username: "maria", Role: string(sec.RoleAdmin)},
		"client-token": {UserID: "u2", Username: "alex", Role: string(sec.RoleClient)},
	}}

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(verifier))
	router.Mount("/movies", movie.NewHandler(service).Routes())
	return router, repo
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func seedCatalog(t *testing.T, repo *movie.MemoryRepository, titles ...string) {
	t.Helper()

	for _, title := range titles {
		require.NoError(t, repo.CreateMovie(context.Background(), &movie.Movie{Title: title}))
	}
}

func TestCreateMovie_HTTP(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		body       string
		wantStatus int
	}{
		{"admin creates", "admin-token", `{"title": "The Witcher", "image": "https://img.example.com/w.jpg"}`, http.StatusCreated},
		{"anonymous", "", `{"title": "The Witcher"}`, http.StatusUnauthorized},
		{"invalid token", "bogus-token", `{"title": "The Witcher"}`, http.StatusUnauthorized},
		{"client forbidden", "client-token", `{"title": "The Witcher"}`, http.StatusForbidden},
		{"title too short", "admin-token", `{"title": "Te"}`, http.StatusUnprocessableEntity},
		{"malformed body", "admin-token", `{"title": `, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)

			recorder := doRequest(t, router, http.MethodPost, "/movies", tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestCreateMovie_HTTP_ResponseShape(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/movies", "admin-token",
		`{"title": "The Witcher", "image": "https://img.example.com/w.jpg"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data movie.Movie `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.NotZero(t, envelope.Data.ID)
	assert.Equal(t, "The Witcher", envelope.Data.Title)
	assert.Equal(t, 0.0, envelope.Data.Score)
	assert.Equal(t, 0, envelope.Data.Count)
}

func TestListMovies_HTTP(t *testing.T) {
	router, repo := newTestRouter(t)
	seedCatalog(t, repo, "The Witcher", "Witcher Origins", "Venom")

	// Catalog reads need no token.
	recorder := doRequest(t, router, http.MethodGet, "/movies?title=witcher", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []movie.Movie `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Meta.Total)
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "The Witcher", envelope.Data[0].Title)
}

func TestGetMovie_HTTP(t *testing.T) {
	router, repo := newTestRouter(t)
	seedCatalog(t, repo, "The Witcher")

	recorder := doRequest(t, router, http.MethodGet, "/movies/1", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/movies/999", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// A non-numeric id is indistinguishable from an absent movie.
	recorder = doRequest(t, router, http.MethodGet, "/movies/abc", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
