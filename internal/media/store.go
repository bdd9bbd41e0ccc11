// Package media stores uploaded post images on local disk and hands back an
// opaque reference that posts keep in their image column.
package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"blogicum/internal/middleware"
	"blogicum/internal/models"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// Dir is the folder under the media root that holds post images.
	Dir = "posts_images"

	DefaultMaxUploadMB = 5
	MaxDimension       = 10000
)

var refPattern = regexp.MustCompile(`^` + Dir + `/[0-9a-f]{64}\.(jpg|png|gif|webp)$`)

type UploadInput struct {
	UserID      uint
	ContentType string
	Content     []byte
}

// Store writes images under root. Identical uploads share one file.
type Store struct {
	root     string
	maxBytes int64
}

func NewStore(root string, maxUploadMB int) *Store {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}
	return &Store{
		root:     root,
		maxBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// MaxBytes is the upload size limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Root is the directory served under /media.
func (s *Store) Root() string {
	return s.root
}

// Save validates the upload as an image and stores it, returning its reference.
func (s *Store) Save(ctx context.Context, in UploadInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	ext, ok := extensionFor(format)
	if !ok {
		return "", models.NewValidationError("Unsupported image format")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return "", models.NewValidationError("Image dimensions out of range")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !matchesFormat(provided, format) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	sum := sha256.Sum256(in.Content)
	ref := path.Join(Dir, hex.EncodeToString(sum[:])+"."+ext)
	dst := s.Path(ref)

	if _, err := os.Stat(dst); err == nil {
		return ref, nil
	}
	if err := writeAtomically(dst, in.Content); err != nil {
		return "", models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "image stored",
		slog.String("ref", ref),
		slog.Uint64("user_id", uint64(in.UserID)),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
	)
	return ref, nil
}

// Path maps a reference to its file on disk.
func (s *Store) Path(ref string) string {
	return filepath.Join(s.root, filepath.FromSlash(ref))
}

// ValidRef reports whether ref looks like something Save produced. Empty is
// valid and means "no image".
func ValidRef(ref string) bool {
	return ref == "" || refPattern.MatchString(ref)
}

// Exists reports whether ref is stored.
func (s *Store) Exists(ref string) bool {
	if ref == "" || !ValidRef(ref) {
		return false
	}
	_, err := os.Stat(s.Path(ref))
	return err == nil
}

func extensionFor(format string) (string, bool) {
	switch format {
	case "jpeg":
		return "jpg", true
	case "png", "gif", "webp":
		return format, true
	default:
		return "", false
	}
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(mediaType)
}

func matchesFormat(contentType, format string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/pjpeg":
		return format == "jpeg"
	default:
		return contentType == "image/"+format
	}
}

func writeAtomically(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
