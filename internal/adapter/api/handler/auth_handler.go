package handler

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

type AuthHandler struct {
	store *usecase.StoreUseCase
}

func NewAuthHandler(store *usecase.StoreUseCase) *AuthHandler {
	return &AuthHandler{
		store: store,
	}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse carries the bearer token for Authorization headers on
// session-protected routes.
type sessionResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type profileRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.store.Signup(c.Request().Context(), entity.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, session)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.store.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return response.Error(c, err)
	}

	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

func (h *AuthHandler) session(c echo.Context) (sessionResponse, error) {
	token, err := h.store.SessionToken(c.Request().Context())
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{User: h.store.CurrentUser(), Token: token}, nil
}

func (h *AuthHandler) Logout(c echo.Context) error {
	err := h.store.Logout(c.Request().Context())
	return mutationResult(c, nil, err)
}

func (h *AuthHandler) Me(c echo.Context) error {
	return response.Success(c, h.store.CurrentUser())
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.store.UpdateUserProfile(c.Request().Context(), req.Name, req.Phone)
	return mutationResult(c, h.store.CurrentUser(), err)
}
