package assetstore

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var ErrInvalidImage = errors.New("uploaded thumbnail is not a valid image")

// PlaceholderName is the ultimate-fallback thumbnail, guaranteed present in
// the repository once EnsurePlaceholder has run.
const PlaceholderName = "placeholder.jpg"

// Store persists thumbnail images in an asset Repository and retires
// extracted game directories under the games root.
//
// Writes always use a fresh unique name instead of overwriting in place, so a
// concurrent reader can never observe a half-written file. The cost is an
// orphaned file when a best-effort delete fails, which is invisible to users
// once the owning record points elsewhere.
type Store struct {
	repo      Repository
	gamesRoot string
	log       *zap.Logger
}

func NewStore(repo Repository, gamesRoot string, log *zap.Logger) *Store {
	return &Store{repo: repo, gamesRoot: gamesRoot, log: log}
}

// Repo exposes the underlying repository for the thumbnail resolver.
func (s *Store) Repo() Repository { return s.repo }

// SaveThumbnail writes the image under a new unique name and returns it.
// Names embed the owning game id when known plus a timestamp and random
// suffix, so repeated uploads for the same game never collide.
func (s *Store) SaveThumbnail(data []byte, gameID *int64) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrInvalidImage
	}

	suffix, err := randHex(4)
	if err != nil {
		return "", fmt.Errorf("generate thumbnail suffix: %w", err)
	}
	ext := mt.Extension()
	if ext == "" {
		ext = ".jpg"
	}

	var name string
	if gameID != nil {
		name = fmt.Sprintf("game_%d_%d_%s%s", *gameID, time.Now().UnixNano(), suffix, ext)
	} else {
		name = fmt.Sprintf("thumbnail_%d_%s%s", time.Now().UnixNano(), suffix, ext)
	}

	if err := s.repo.Write(name, data); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	return name, nil
}

// RemoveThumbnail deletes the named asset. A missing asset is not an error.
func (s *Store) RemoveThumbnail(assetID string) error {
	if assetID == "" {
		return nil
	}
	return s.repo.Delete(filepath.Base(assetID))
}

// UpdateThumbnail retires the previous asset and saves the replacement.
// Removing the old file is best-effort: a failure is logged and the new
// asset is still written, so the caller always gets a usable identifier.
func (s *Store) UpdateThumbnail(oldAssetID string, data []byte, gameID *int64) (string, error) {
	if oldAssetID != "" {
		if err := s.RemoveThumbnail(oldAssetID); err != nil {
			s.log.Warn("failed to remove superseded thumbnail",
				zap.String("asset", oldAssetID), zap.Error(err))
		}
	}
	return s.SaveThumbnail(data, gameID)
}

// RemoveGameDirectory recursively deletes an extracted package directory.
// Idempotent on a missing directory.
func (s *Store) RemoveGameDirectory(token string) error {
	if token == "" {
		return nil
	}
	dir := filepath.Join(s.gamesRoot, filepath.Base(token))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove game directory: %w", err)
	}
	return nil
}

// EnsurePlaceholder writes the default fallback image if it is missing, so
// the resolver's final step always has a file to hand back.
func (s *Store) EnsurePlaceholder() error {
	if s.repo.Exists(PlaceholderName) {
		return nil
	}
	return s.repo.Write(PlaceholderName, placeholderJPEG())
}

func randHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
