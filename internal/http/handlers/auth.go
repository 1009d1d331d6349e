package handlers

import (
	"net/http"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/middleware"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("login:"+middleware.ClientIP(r), 5, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		if common.Is(err, common.CodeUnauthorized) {
			response.JSON(w, http.StatusUnauthorized, loginResponse{Success: false, Message: "Senha incorreta!"})
			return
		}
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, loginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}
