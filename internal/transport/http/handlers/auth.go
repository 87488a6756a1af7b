package handlers

import (
	"net/http"
	"time"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/config"
	apierrors "github.com/AkaashSamson/Devnovate-Blogs/internal/errors"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/models"
)

// Register — POST /auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.service.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setAuthCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, models.AuthResponse{
		Success: true,
		User:    models.UserFromDomain(res.User),
		Token:   res.Token,
	})
}

// Login — POST /auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.setAuthCookie(w, res.Token)
	writeJSON(w, http.StatusOK, models.AuthResponse{
		Success: true,
		User:    models.UserFromDomain(res.User),
		Token:   res.Token,
	})
}

// Logout — POST /auth/logout. Токены stateless, на сервере ничего не
// отзывается: в cookie-режиме кука затирается, в header-режиме клиент
// просто забывает токен.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Auth.TokenTransport == config.TokenTransportCookie {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cfg.Auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cfg.Auth.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, http.StatusOK, models.LogoutResponse{
		Success: true,
		Message: "logged out",
	})
}

func (h *Handlers) setAuthCookie(w http.ResponseWriter, token string) {
	if h.cfg.Auth.TokenTransport != config.TokenTransportCookie {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.Auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
