// Package storage uploads vendor images to object storage and hands back
// their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/intloko-backend/internal/domain"
)

// Image is one selected file bound to a named slot ("food", "outside").
type Image struct {
	Slot        string
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}

// ObjectStore is the subset of Client the uploader needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, name string, body io.Reader, size int64, contentType string, upsert bool) (string, error)
	PublicURL(bucket, path string) string
}

// Uploader runs the image upload stage against one bucket.
type Uploader struct {
	store  ObjectStore
	bucket string
	now    func() time.Time
	log    *slog.Logger
}

// NewUploader creates an Uploader for bucket.
func NewUploader(store ObjectStore, bucket string, logger *slog.Logger) *Uploader {
	return &Uploader{
		store:  store,
		bucket: bucket,
		now:    time.Now,
		log:    logger.With("service", "storage"),
	}
}

// UploadAll uploads every image concurrently and returns slot → public URL.
// The first failure cancels the remaining uploads and is returned as a
// *domain.UploadError. Objects already stored are left in place.
func (u *Uploader) UploadAll(ctx context.Context, images []Image) (map[string]string, error) {
	urls := make(map[string]string, len(images))
	if len(images) == 0 {
		return urls, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, img := range images {
		g.Go(func() error {
			name := u.objectName(img)
			stored, err := u.store.Upload(gctx, u.bucket, name, img.Body, img.Size, img.ContentType, true)
			if err != nil {
				return &domain.UploadError{Slot: img.Slot, Err: err}
			}

			mu.Lock()
			urls[img.Slot] = u.store.PublicURL(u.bucket, stored)
			mu.Unlock()

			u.log.InfoContext(gctx, "image uploaded",
				slog.String("slot", img.Slot),
				slog.String("object", stored),
				slog.Int64("size", img.Size),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (u *Uploader) objectName(img Image) string {
	return fmt.Sprintf("%d-%s-%s", u.now().UnixMilli(), img.Slot, sanitizeFilename(img.Filename))
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "image"
	}
	return out
}
