package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngPhoto() *Photo {
	return &Photo{Filename: "id card.png", Body: bytes.NewReader(pngHeader)}
}

// countFiles returns the regular files below dir.
func countFiles(t *testing.T, dir string) int {
	t.Helper()
	var n int
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestRegisterMember(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)

	m, err := f.members.Register(ctx, admin, " Bob ", "bob@example.com", pngPhoto())
	require.NoError(t, err)
	require.Equal(t, "Bob", m.Name)
	require.True(t, strings.HasPrefix(m.IDPhotoKey, "clubs/"+admin.ClubID+"/member_ids/"))
	require.True(t, strings.HasSuffix(m.IDPhotoKey, "-id_card.png"))
	require.Equal(t, "/v1/blobs/"+m.IDPhotoKey, m.IDPhotoURL)
	require.Equal(t, domain.MemberStatusExpired, m.Status(time.Now()))

	rc, err := f.members.OpenPhoto(ctx, admin, m.IDPhotoKey)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, pngHeader, data)

	list, err := f.members.List(ctx, f.guest(t, admin))
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRegisterMemberValidates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	admin := f.admin(t)

	tests := []struct {
		name, member, email string
		photo               *Photo
	}{
		{"missing name", "", "bob@example.com", pngPhoto()},
		{"missing email", "Bob", "", pngPhoto()},
		{"bad email", "Bob", "not-an-email", pngPhoto()},
		{"missing photo", "Bob", "bob@example.com", nil},
		{"empty photo", "Bob", "bob@example.com", &Photo{Filename: "a.png", Body: bytes.NewReader(nil)}},
		{"not an image", "Bob", "bob@example.com", &Photo{Filename: "a.png", Body: strings.NewReader("%PDF-1.4 hello")}},
		{"too large", "Bob", "bob@example.com", &Photo{Filename: "a.png", Body: io.MultiReader(bytes.NewReader(pngHeader), bytes.NewReader(make([]byte, 2048)))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.members.Register(context.Background(), admin, tt.member, tt.email, tt.photo)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	require.Zero(t, countFiles(t, f.blobDir), "rejected photos are not kept")
}

// failingMembers makes every member insert fail.
type failingMembers struct {
	store.Members
}

func (failingMembers) CreateMember(context.Context, domain.Member) error {
	return errors.New("disk full")
}

type failingMemberStore struct {
	store.Store
}

func (s failingMemberStore) Members() store.Members {
	return failingMembers{s.Store.Members()}
}

func TestRegisterMemberRemovesPhotoOnFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	admin := f.admin(t)

	svc := *f.members
	svc.Store = failingMemberStore{f.store}

	_, err := svc.Register(context.Background(), admin, "Bob", "bob@example.com", pngPhoto())
	require.EqualError(t, err, "disk full")
	require.Zero(t, countFiles(t, f.blobDir))
}

func TestSetVeto(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	m := f.member(t, admin, "Bob")

	got, err := f.members.SetVeto(ctx, admin, m.ID, true)
	require.NoError(t, err)
	require.True(t, got.Vetoed)
	require.Equal(t, domain.MemberStatusVetoed, got.Status(time.Now()))

	_, err = f.members.SetVeto(ctx, f.guest(t, admin), m.ID, false)
	require.ErrorIs(t, err, ErrNotAdministrator)
	_, err = f.members.SetVeto(ctx, admin, "missing", true)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestOpenPhotoIsScopedToClub(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	m := f.member(t, admin, "Bob")

	other := f.admin(t)
	_, err := f.members.OpenPhoto(ctx, other, m.IDPhotoKey)
	require.ErrorIs(t, err, ErrPhotoNotFound)

	_, err = f.members.OpenPhoto(ctx, admin, "clubs/"+admin.ClubID+"/member_ids/missing.png")
	require.ErrorIs(t, err, ErrPhotoNotFound)
	_, err = f.members.OpenPhoto(ctx, admin, "clubs/"+admin.ClubID+"/../../etc/passwd")
	require.ErrorIs(t, err, ErrPhotoNotFound)

	_, err = f.members.Get(ctx, other, m.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)
}
