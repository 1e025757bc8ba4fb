package http

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

// multipartOverhead is allowed on top of the photo for the other form fields.
const multipartOverhead = 64 << 10

type MemberHandler struct {
	Members       *service.MemberService
	MaxPhotoBytes int64
}

// HandleList godoc
//
//	@Summary		List Members
//	@Tags			Members
//	@Produce		json
//	@Success		200	{object}	clubsdk.MemberListResponse
//	@Failure		403	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/members [get].
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	out := make([]clubsdk.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMember(m, now))
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.MemberListResponse{Members: out})
}

// HandleRegister godoc
//
//	@Summary		Register Member
//	@Description	Register a member with an identity photo. The photo is stored before the member record is written.
//	@Tags			Members
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name	formData	string	true	"Member name"
//	@Param			email	formData	string	true	"Member email"
//	@Param			photo	formData	file	true	"Identity photo"
//	@Success		201		{object}	clubsdk.MemberResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		403		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/members [post].
func (h *MemberHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxPhotoBytes
	if limit <= 0 {
		limit = service.DefaultMaxPhotoBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		clubsdk.ErrInvalidArgument.WithMessage("invalid multipart form").WriteError(w)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var photo *service.Photo
	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		photo = &service.Photo{Filename: header.Filename, Body: file}
	case errors.Is(err, http.ErrMissingFile):
	default:
		clubsdk.ErrInvalidArgument.WithMessage("invalid photo upload").WriteError(w)
		return
	}

	m, err := h.Members.Register(r.Context(), sessionFrom(r), r.FormValue("name"), r.FormValue("email"), photo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(m, time.Now()))
}

// HandleGet godoc
//
//	@Summary		Get Member
//	@Tags			Members
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{object}	clubsdk.MemberResponse
//	@Failure		404	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/members/{id} [get].
func (h *MemberHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.Members.Get(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMember(m, time.Now()))
}

// HandleVeto godoc
//
//	@Summary		Veto Member
//	@Description	Set or clear the veto on a member. Vetoed members cannot be served. Administrator only.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Member ID"
//	@Param			request	body		clubsdk.VetoRequest	true	"Veto flag"
//	@Success		200		{object}	clubsdk.MemberResponse
//	@Failure		403		{object}	clubsdk.Error
//	@Failure		404		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/veto [post].
func (h *MemberHandler) HandleVeto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubsdk.VetoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.Members.SetVeto(r.Context(), sessionFrom(r), id, req.Vetoed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMember(m, time.Now()))
}

// HandlePhoto godoc
//
//	@Summary		Identity Photo
//	@Description	Download a member identity photo of the caller's club.
//	@Tags			Members
//	@Produce		image/png,image/jpeg
//	@Param			key	path	string	true	"Blob key"
//	@Success		200
//	@Failure		404	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/blobs/{key} [get].
func (h *MemberHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	rc, err := h.Members.OpenPhoto(r.Context(), sessionFrom(r), r.PathValue("key"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 512)
	head, _ := br.Peek(512)

	httpx.NoCache(w)
	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, br); err != nil {
		slogx.FromContext(r.Context()).Warn("photo download interrupted", "error", err)
	}
}
