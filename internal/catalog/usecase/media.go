package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/storage"
)

// Upload is one inbound file from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// storeMedia writes one upload under the given key prefix and returns the
// resolved URL of the stored object.
func (s *Usecase) storeMedia(ctx context.Context, prefix string, up Upload) (string, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", goerror.NewBusiness("only image uploads are accepted", goerror.CodeInvalidInput)
	}

	key := prefix + "/" + s.token.Generate() + strings.ToLower(filepath.Ext(up.Filename))

	info, err := s.media.Put(ctx, s.mediaBucket(), key, up.Body, storage.PutOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to store media object", "key", key, "error", err)
		return "", goerror.NewDependency("could not store the uploaded file, please try again")
	}

	return s.mediaURL(ctx, info.Key)
}

// removeMedia deletes a previously stored object by its public URL. Failures
// only log; a dangling object never blocks the caller.
func (s *Usecase) removeMedia(ctx context.Context, url string) {
	key, ok := s.mediaKeyFromURL(url)
	if !ok {
		return
	}

	if err := s.media.Delete(ctx, s.mediaBucket(), key); err != nil {
		slog.WarnContext(ctx, "failed to delete media object", "key", key, "error", err)
	}
}
