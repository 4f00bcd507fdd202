package score

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/middleware"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/respond"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
	"github.com/felipeam10/dsmovie-restassured/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Authenticated identities only, admin or client
	router.With(middleware.RequireCapability(sec.CapabilitySubmitScore)).Put("/", handler.submitScore)
	router.With(middleware.RequireCapability(sec.CapabilitySubmitScore)).Get("/{movieId}", handler.getOwnScore)

	return router
}

// submitRequest carries pointer fields so the service can tell a missing
// movieId or score apart from a zero.
type submitRequest struct {
	MovieID *int64   `json:"movieId"`
	Score   *float64 `json:"score"`
}

func (handler *Handler) submitScore(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user := middleware.GetUser(request)

	updated, err := handler.service.Submit(request.Context(), user.Username, SubmitInput{
		MovieID: input.MovieID,
		Value:   input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) getOwnScore(writer http.ResponseWriter, request *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(request, "movieId"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Movie"))
		return
	}

	user := middleware.GetUser(request)

	sub, err := handler.service.GetOwn(request.Context(), user.Username, movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sub)
}
