package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobreviews/api/http/presenter"
	"github.com/artem13815/jobreviews/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *slog.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *slog.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Signup handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signupRequest true "registration payload"
// @Success 201 {object} messageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	_, err := h.useCase.Signup(c.UserContext(), auth.SignupInput{
		Name:     req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrPasswordTooLong):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusBadRequest, "user already exists")
		default:
			return presenter.Internal(c, h.log, "signup", err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, messageResponse{Message: "account created successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    auth.PublicUser `json:"user"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	// An unreadable body is just another failed login.
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	}

	result, err := h.useCase.Login(c.UserContext(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		}
		return presenter.Internal(c, h.log, "login", err)
	}

	return presenter.JSON(c, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Logout is a placeholder: tokens are stateless and expire on their own.
// @Summary  Logout
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} messageResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Router   /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, messageResponse{Message: "logged out"})
}
