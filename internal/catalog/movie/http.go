package movie

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
	"github.com/felipeam10/dsmovie-restassured/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalog reads
	router.Get("/", handler.listMovies)
	router.Get("/{id}", handler.getMovie)

	// Admin only
	router.With(middleware.RequireCapability(sec.CapabilityInsertMovie)).Post("/", handler.createMovie)

	return router
}

func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Title: request.URL.Query().Get("title"),
	}

	movies, total, err := handler.service.ListMovies(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, movies, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Movie"))
		return
	}

	m, err := handler.service.GetMovie(request.Context(), movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, m)
}

// createRequest represents the JSON payload for a catalog insert. Aggregate
// fields that clients sometimes echo back (score, count) are ignored.
type createRequest struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := decodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft := &Movie{
		Title: input.Title,
		Image: input.Image,
	}

	if err := handler.service.CreateMovie(request.Context(), draft); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, draft)
}

func decodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}
