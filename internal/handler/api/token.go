package api

import (
	"net/http"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// TokenHandler serves the credential exchange endpoints under /api/token.
type TokenHandler struct {
	tokens domain.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokens domain.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue handles POST /api/token
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := handler.DecodeJSON(r, &creds); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	pair, err := h.tokens.Issue(r.Context(), creds)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles POST /api/token/refresh. The presented refresh token is
// rotated: it stops working the moment a new pair is issued.
func (h *TokenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	pair, err := h.tokens.Refresh(r.Context(), req.Refresh)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, pair)
}

// Revoke handles POST /api/token/logout
func (h *TokenHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	if err := h.tokens.Revoke(r.Context(), req.Refresh); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
