package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytebank/bytebank/internal/auth"
)

// AuthService handles account registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Register creates a new account and returns a session token.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrEmptyUsername),
			errors.Is(err, auth.ErrEmptyPassword),
			errors.Is(err, auth.ErrPasswordMismatch),
			errors.Is(err, auth.ErrInvalidUsername):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	token, err := s.jwtManager.Generate(user.Username)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", user.Username, "error", err)
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.logger.Info("Account created", "username", user.Username)
	respondJSON(w, http.StatusCreated, sessionResponse{Username: user.Username, Token: token})
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ok, err := s.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Error("Login failed", "username", req.Username, "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !ok {
		s.logger.Warn("Invalid credentials", "username", req.Username)
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.jwtManager.Generate(req.Username)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", req.Username, "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.logger.Info("User logged in", "username", req.Username)
	respondJSON(w, http.StatusOK, sessionResponse{Username: req.Username, Token: token})
}
