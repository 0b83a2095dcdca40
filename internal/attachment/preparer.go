package attachment

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
)

const jpegQuality = 85

// Preparer turns local image references into upload parts. Only files
// under root are read.
type Preparer struct {
	maxDim   int
	root     string
	readFile func(string) ([]byte, error)
	logger   *slog.Logger
}

// NewPreparer creates Preparer reading images below root. maxDim <= 0
// disables resizing.
func NewPreparer(maxDim int, root string, logger *slog.Logger) *Preparer {
	if maxDim < 0 {
		maxDim = 0
	}
	return &Preparer{maxDim: maxDim, root: resolvePath(root), readFile: os.ReadFile, logger: logger}
}

// Prepare reads ref from disk and downsizes it when it exceeds the configured dimension.
// Images that cannot be decoded are returned untouched. Read failures and refs
// outside the image directory are returned as errors.
func (p *Preparer) Prepare(ctx context.Context, ref string) (api.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return api.Attachment{}, err
	}

	path := resolvePath(ref)
	if !within(p.root, path) {
		return api.Attachment{}, fmt.Errorf("image %s is outside %s: %w", ref, p.root, domainErrors.ErrValidation)
	}

	data, err := p.readFile(path)
	if err != nil {
		return api.Attachment{}, fmt.Errorf("read image %s: %w", ref, err)
	}

	att := api.Attachment{
		Filename:    displayName(ref),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}

	if p.maxDim == 0 {
		return att, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		p.logger.Debug("image left as is", slog.String("ref", ref), slog.String("error", err.Error()))
		return att, nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= p.maxDim && height <= p.maxDim {
		return att, nil
	}

	if width >= height {
		img = imaging.Resize(img, p.maxDim, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, p.maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		p.logger.Warn("image re-encode failed", slog.String("ref", ref), slog.String("error", err.Error()))
		return att, nil
	}

	p.logger.Debug("image resized",
		slog.String("ref", ref),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("bytes", buf.Len()),
	)

	att.Data = buf.Bytes()
	att.ContentType = "image/jpeg"
	if att.Filename != "" {
		att.Filename = strings.TrimSuffix(att.Filename, filepath.Ext(att.Filename)) + ".jpg"
	}
	return att, nil
}

func displayName(ref string) string {
	name := filepath.Base(ref)
	switch name {
	case ".", string(filepath.Separator):
		return ""
	}
	return name
}

// resolvePath returns the absolute form of path with symlinks followed as
// far as they exist.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}
	return abs
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
