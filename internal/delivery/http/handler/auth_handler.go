package handler

import (
	"net/http"

	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/response"
	"telesalud-admin/pkg/validator"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles POST /auth/login. The username field carries the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	resp, err := h.authUsecase.Login(r.Context(), sessionID(r), &req)
	if err != nil {
		writeError(w, err, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	resp, err := h.authUsecase.Register(r.Context(), sessionID(r), &req)
	if err != nil {
		writeError(w, err, "Failed to register user")
		return
	}

	if resp.User.IsEmpty() {
		response.Success(w, http.StatusCreated, "Check your email to confirm the account", resp)
		return
	}
	response.Success(w, http.StatusCreated, "User registered successfully", resp)
}

// OAuth handles GET /auth/oauth/{provider} by redirecting to the provider.
func (h *AuthHandler) OAuth(w http.ResponseWriter, r *http.Request) {
	url, err := h.authUsecase.OAuthURL(mux.Vars(r)["provider"])
	if err != nil {
		writeError(w, err, "Failed to start federated sign-in")
		return
	}

	response.Redirect(w, url)
}

// Session handles POST /auth/session, adopting a token the browser already holds.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	resp, err := h.authUsecase.RestoreSession(r.Context(), sessionID(r), &req)
	if err != nil {
		writeError(w, err, "Failed to restore session")
		return
	}

	response.Success(w, http.StatusOK, "Session restored", resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	resp, err := h.authUsecase.Logout(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", resp)
}

// Me returns the session's current user; empty when nobody is signed in.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.CurrentUser(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err, "Failed to get user info")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
