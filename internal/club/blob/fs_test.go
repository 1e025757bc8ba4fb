package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aussiebroadwan/clubhouse/internal/club/blob"
	"github.com/stretchr/testify/require"
)

func TestMemberPhotoKey(t *testing.T) {
	t.Parallel()

	key := blob.MemberPhotoKey("club-1", "../../My Passport.JPG")
	require.True(t, strings.HasPrefix(key, "clubs/club-1/member_ids/"))
	require.True(t, strings.HasSuffix(key, "-My_Passport.JPG"))
	require.True(t, blob.OwnedBy(key, "club-1"))
	require.False(t, blob.OwnedBy(key, "club-2"))
	require.False(t, blob.OwnedBy(key, ""))

	require.NotEqual(t, key, blob.MemberPhotoKey("club-1", "../../My Passport.JPG"))
	require.True(t, strings.HasSuffix(blob.MemberPhotoKey("c", "..."), "-photo"))
}

func TestFSStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := blob.NewFSStore(t.TempDir(), "/v1/blobs/")
	require.NoError(t, err)
	ctx := context.Background()
	key := blob.MemberPhotoKey("club-1", "id.png")

	n, err := s.Put(ctx, key, strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.EqualValues(t, 9, n)
	require.Equal(t, "/v1/blobs/"+key, s.URL(key))

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	require.ErrorIs(t, err, blob.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, key), blob.ErrNotFound)
}

func TestFSStoreRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	s, err := blob.NewFSStore(t.TempDir(), "/v1/blobs")
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "/etc/passwd", "../x", "clubs/../../x", "clubs//x", `clubs\x`} {
		_, err := s.Put(ctx, key, strings.NewReader("x"))
		require.ErrorIs(t, err, blob.ErrInvalidKey, "key %q", key)
	}
}

func TestFSStorePutStopsOnCancel(t *testing.T) {
	t.Parallel()

	s, err := blob.NewFSStore(t.TempDir(), "/v1/blobs")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	key := blob.MemberPhotoKey("club-1", "id.png")
	_, err = s.Put(ctx, key, strings.NewReader("data"))
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Get(context.Background(), key)
	require.ErrorIs(t, err, blob.ErrNotFound)
}
