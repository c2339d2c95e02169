package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/myturn82/dragonj/internal/api/middleware"
	"github.com/myturn82/dragonj/internal/auth"
	"github.com/myturn82/dragonj/internal/storage/models"
)

var validate = validator.New()

// CredentialsRequest carries sign-up and sign-in input.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SessionResponse is returned from successful sign-up and sign-in.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

// SignUp creates an account and signs the user in.
func SignUp(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid credentials payload", err.Error())
			return
		}

		token, user, err := svc.SignUp(r.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrEmailTaken) {
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Email already registered")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to create account")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SessionResponse{Token: token, User: userResponse(user)})
	}
}

// SignIn verifies credentials and issues a session token.
func SignIn(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Email and password are required")
			return
		}

		token, user, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to sign in")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SessionResponse{Token: token, User: userResponse(user)})
	}
}

// SignOut revokes the current session token.
func SignOut(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r)
		if token != "" {
			if err := svc.SignOut(r.Context(), token); err != nil {
				middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to sign out")
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the authenticated user.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		if user == nil {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Not signed in")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userResponse(user))
	}
}
