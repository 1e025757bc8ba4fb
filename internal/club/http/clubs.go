package http

import (
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

type ClubHandler struct {
	Provision *service.ProvisionService
	Identity  *service.IdentityService
	Validator *clubsdk.Validator
}

// HandleProvision godoc
//
//	@Summary		Provision Club
//	@Description	Create a club administered by the caller and grant the caller the administrator role in it.
//	@Description	Calling it again for the same administrator returns the existing club. Refresh the session to pick up the new claims.
//	@Tags			Clubs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.ProvisionRequest	true	"adminUid must be the caller"
//	@Success		200		{object}	clubsdk.ProvisionResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		401		{object}	clubsdk.Error
//	@Failure		403		{object}	clubsdk.Error
//	@Failure		500		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/clubs [post].
func (h *ClubHandler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.ProvisionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	club, err := h.Provision.Provision(r.Context(), sessionFrom(r), req.AdminUID, req.ClubName)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clubsdk.ProvisionResponse{
		Status: clubsdk.ProvisionStatusSuccess,
		ClubID: club.ID,
	})
}

// HandleGet godoc
//
//	@Summary		Current Club
//	@Tags			Clubs
//	@Produce		json
//	@Success		200	{object}	clubsdk.ClubResponse
//	@Failure		403	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/club [get].
func (h *ClubHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	club, err := h.Provision.GetClub(r.Context(), s)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clubsdk.ClubResponse{
		ID:        club.ID,
		Name:      club.Name,
		AdminUID:  club.AdminUserID,
		Role:      s.Role,
		CreatedAt: club.CreatedAt,
	})
}

// HandleGrantGuest godoc
//
//	@Summary		Grant Guest
//	@Description	Bind a registered user to the caller's club with the guest role. The user refreshes their session to use it.
//	@Tags			Clubs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.GrantGuestRequest	true	"User"
//	@Success		200		{object}	clubsdk.ClaimsResponse
//	@Failure		403		{object}	clubsdk.Error
//	@Failure		404		{object}	clubsdk.Error	"no such user"
//	@Failure		409		{object}	clubsdk.Error	"user belongs to another club"
//	@Security		BearerAuth
//	@Router			/v1/club/guests [post].
func (h *ClubHandler) HandleGrantGuest(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.GrantGuestRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Identity.GrantGuest(r.Context(), sessionFrom(r), req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClaims(p))
}
