package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/blob"
	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

const DefaultMaxPhotoBytes = 5 << 20

// Photo is an uploaded identity photo.
type Photo struct {
	Filename string
	Body     io.Reader
}

type MemberService struct {
	Store         store.Store
	Blobs         blob.Store
	MaxPhotoBytes int64
}

// Register stores the identity photo and then the member. When the member
// cannot be written the photo is removed again.
func (s *MemberService) Register(ctx context.Context, caller domain.Session, name, email string, photo *Photo) (domain.Member, error) {
	l := slogx.FromContext(ctx)

	if err := requireClub(caller); err != nil {
		return domain.Member{}, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return domain.Member{}, invalidArgument("name is required")
	case email == "":
		return domain.Member{}, invalidArgument("email is required")
	case photo == nil || photo.Body == nil:
		return domain.Member{}, invalidArgument("identity photo is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.Member{}, invalidArgument("email is not a valid address")
	}

	body, err := s.checkPhoto(photo.Body)
	if err != nil {
		return domain.Member{}, err
	}

	key := blob.MemberPhotoKey(caller.ClubID, photo.Filename)
	n, err := s.Blobs.Put(ctx, key, io.LimitReader(body, s.maxPhotoBytes()+1))
	if err != nil {
		return domain.Member{}, err
	}
	if n > s.maxPhotoBytes() {
		s.removePhoto(ctx, key)
		return domain.Member{}, invalidArgument("identity photo is larger than %d bytes", s.maxPhotoBytes())
	}

	m := domain.Member{
		ID:         idx.New().String(),
		ClubID:     caller.ClubID,
		Name:       name,
		Email:      email,
		IDPhotoURL: s.Blobs.URL(key),
		IDPhotoKey: key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Store.Members().CreateMember(ctx, m); err != nil {
		s.removePhoto(ctx, key)
		return domain.Member{}, err
	}

	l.Info("member registered", "club_id", m.ClubID, "member_id", m.ID)
	return m, nil
}

// checkPhoto sniffs the start of the upload and rejects anything that is not an image.
func (s *MemberService) checkPhoto(r io.Reader) (io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if n == 0 {
		return nil, invalidArgument("identity photo is empty")
	}
	head = head[:n]

	if ct := http.DetectContentType(head); !strings.HasPrefix(ct, "image/") {
		return nil, invalidArgument("identity photo must be an image, got %s", ct)
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}

func (s *MemberService) removePhoto(ctx context.Context, key string) {
	if err := s.Blobs.Delete(ctx, key); err != nil && !errors.Is(err, blob.ErrNotFound) {
		slogx.FromContext(ctx).Error("remove orphaned identity photo", "key", key, "error", err)
	}
}

func (s *MemberService) maxPhotoBytes() int64 {
	if s.MaxPhotoBytes <= 0 {
		return DefaultMaxPhotoBytes
	}
	return s.MaxPhotoBytes
}

// List returns the club's members, newest first.
func (s *MemberService) List(ctx context.Context, caller domain.Session) ([]domain.Member, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}
	return s.Store.Members().ListMembers(ctx, caller.ClubID)
}

func (s *MemberService) Get(ctx context.Context, caller domain.Session, memberID string) (domain.Member, error) {
	if err := requireClub(caller); err != nil {
		return domain.Member{}, err
	}
	m, err := s.Store.Members().GetMember(ctx, caller.ClubID, memberID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, ErrMemberNotFound
	}
	return m, err
}

// SetVeto bars or re-admits a member. Administrators only.
func (s *MemberService) SetVeto(ctx context.Context, caller domain.Session, memberID string, vetoed bool) (domain.Member, error) {
	if err := requireAdministrator(caller); err != nil {
		return domain.Member{}, err
	}

	err := s.Store.Members().SetVetoed(ctx, caller.ClubID, memberID, vetoed)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, ErrMemberNotFound
	}
	if err != nil {
		return domain.Member{}, err
	}

	slogx.FromContext(ctx).Info("member veto changed", "club_id", caller.ClubID, "member_id", memberID, "vetoed", vetoed)
	return s.Get(ctx, caller, memberID)
}

// OpenPhoto streams an identity photo of the caller's club.
func (s *MemberService) OpenPhoto(ctx context.Context, caller domain.Session, key string) (io.ReadCloser, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}
	if !blob.OwnedBy(key, caller.ClubID) {
		return nil, ErrPhotoNotFound
	}

	rc, err := s.Blobs.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidKey) {
		return nil, ErrPhotoNotFound
	}
	return rc, err
}
