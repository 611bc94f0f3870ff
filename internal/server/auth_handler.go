package server

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/jonathan/admission-advisor/internal/types"
)

// AuthHandler handles dashboard login.
type AuthHandler struct {
	dashboard  *config.DashboardConfig
	passwords  *config.PasswordConfig
	jwtService *JWTService
	validator  *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(dashboard *config.DashboardConfig, passwords *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		dashboard:  dashboard,
		passwords:  passwords,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// Authenticate checks the operator credentials.
func (h *AuthHandler) Authenticate(req *types.LoginRequest) error {
	if !h.dashboard.Enabled() {
		log.Printf("[auth] login attempted but DASHBOARD_PASSWORD_HASH is not set")
		return &ErrInvalidCredentials{}
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.dashboard.Username)) == 1
	// Verify even on a wrong username so both failures take the same time.
	passOK := h.passwords.VerifyPassword(req.Password, h.dashboard.PasswordHash)
	if !userOK || !passOK {
		return &ErrInvalidCredentials{}
	}
	return nil
}

// Login handles dashboard login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := h.Authenticate(&req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username, types.DashboardRole)
	if err != nil {
		log.Printf("[auth] failed to generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Role:    types.DashboardRole,
	})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		// First error only.
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
