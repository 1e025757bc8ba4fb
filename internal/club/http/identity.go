package http

import (
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

type IdentityHandler struct {
	Identity  *service.IdentityService
	Validator *clubsdk.Validator
}

// decode reads a JSON request body into dst and checks its validate tags.
func decode(r *http.Request, v *clubsdk.Validator, dst any) error {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		return err
	}
	return v.Validate(dst)
}

// HandleRegister godoc
//
//	@Summary		Register User
//	@Description	Create a user account. The user is not bound to any club until it provisions one or is granted a role.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.RegisterUserRequest	true	"Registration"
//	@Success		201		{object}	clubsdk.UserResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		409		{object}	clubsdk.Error	"username taken"
//	@Router			/v1/users [post].
func (h *IdentityHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.RegisterUserRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Identity.Register(r.Context(), req.Username, req.DisplayName, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clubsdk.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

// HandleSignIn godoc
//
//	@Summary		Sign In
//	@Description	Exchange a username and password for a session token carrying the caller's club claims.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	clubsdk.SessionResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		401		{object}	clubsdk.Error
//	@Router			/v1/session [post].
func (h *IdentityHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.SignInRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := h.Identity.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSession(tok))
}

// HandleRefresh godoc
//
//	@Summary		Refresh Session
//	@Description	Issue a new token with the caller's current club claims, e.g. after provisioning a club.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	clubsdk.SessionResponse
//	@Failure		401	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/session/refresh [post].
func (h *IdentityHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	tok, err := h.Identity.RefreshSession(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSession(tok))
}

// HandleClaims godoc
//
//	@Summary		Stored Claims
//	@Description	The caller's club binding as currently stored. Refresh the session when it differs from the token.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	clubsdk.ClaimsResponse
//	@Failure		401	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/session/claims [get].
func (h *IdentityHandler) HandleClaims(w http.ResponseWriter, r *http.Request) {
	p, err := h.Identity.Claims(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClaims(p))
}

func toClaims(p domain.Principal) clubsdk.ClaimsResponse {
	resp := clubsdk.ClaimsResponse{UserID: p.UserID, ClubID: p.ClubID, Role: p.Role}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}

func toSession(t service.Token) clubsdk.SessionResponse {
	return clubsdk.SessionResponse{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(t.ExpiresIn.Seconds()),
		ClubID:      t.ClubID,
		Role:        t.Role,
	}
}
