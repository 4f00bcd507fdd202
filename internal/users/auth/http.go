package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/respond"
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

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := decodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Account *Account   `json:"account"`
	Tokens  *TokenPair `json:"tokens"`
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := decodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, pair, err := handler.service.Login(request.Context(), input.Login, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, loginResponse{Account: account, Tokens: pair})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := decodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.RefreshSession(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pair)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := decodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), input.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func decodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}
