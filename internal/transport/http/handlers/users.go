package handlers

import (
	"net/http"

	apierrors "github.com/AkaashSamson/Devnovate-Blogs/internal/errors"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/service"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/middleware"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/transport/http/models"
)

// Me — GET /users/me: профиль текущего пользователя со статистикой автора.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Me(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ProfileFromDomain(profile))
}

// UpdateMe — PUT /users/me: частичная правка профиля.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), service.UpdateProfileInput{
		Actor:    middleware.ActorFrom(r.Context()),
		Name:     in.Name,
		Bio:      in.Bio,
		Location: in.Location,
		Website:  in.Website,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateProfileResponse{
		Success: true,
		User:    models.UserFromDomain(*user),
	})
}
