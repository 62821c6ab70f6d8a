package controllers

import (
	"net/http"

	"masterblog/app/services"
)

// AuthController handles registration and login.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new user account.
// POST /api/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		sendFailure(w, err)
		return
	}
	user, err := ac.auth.Register(creds.Username, creds.Password)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "User registered successfully",
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login checks credentials and returns a bearer token.
// POST /api/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		sendFailure(w, err)
		return
	}
	token, err := ac.auth.Login(creds.Username, creds.Password)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"token": token})
}
