// Package blob stores member identity photos.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("blob: not found")
	ErrInvalidKey = errors.New("blob: invalid key")
)

type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// URL is where clients download the blob from.
	URL(key string) string
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// MemberPhotoKey returns a fresh key for a member's identity photo,
// clubs/{clubID}/member_ids/{uuid}-{filename}.
func MemberPhotoKey(clubID, filename string) string {
	name := unsafeChars.ReplaceAllString(path.Base(filename), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "photo"
	}
	return path.Join("clubs", clubID, "member_ids", uuid.NewString()+"-"+name)
}

// OwnedBy reports whether key lives under clubID's prefix.
func OwnedBy(key, clubID string) bool {
	return clubID != "" && strings.HasPrefix(key, "clubs/"+clubID+"/")
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	return path.Clean(key) == key && !strings.HasPrefix(key, "../") && key != ".."
}
