package export

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
)

// Compositor renders a record to PNG bytes.
type Compositor interface {
	Composite(ctx context.Context, rec *link.Record, logoRef string) ([]byte, error)
}

// Exporter performs download, copy and preview for records.
type Exporter struct {
	Compositor Compositor
	Dir        string
	Clipboard  Clipboard
	Opener     Opener
	Logger     *log.Logger
}

// New creates an Exporter. An empty dir means the working directory.
func New(c Compositor, dir string, clip Clipboard, opener Opener, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{Compositor: c, Dir: dir, Clipboard: clip, Opener: opener, Logger: logger}
}

// Render composites rec and returns the PNG along with its download filename.
func (e *Exporter) Render(ctx context.Context, rec *link.Record, logoRef string) ([]byte, string, error) {
	if rec == nil {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "record is required")
	}
	if e.Compositor == nil {
		return nil, "", errors.New(errors.ErrCodeInternal, "no compositor configured")
	}
	data, err := e.Compositor.Composite(ctx, rec, logoRef)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(rec.Title), nil
}

// Download composites rec and writes qr-{slug}.png under Dir, replacing any
// existing file. It returns the written path.
func (e *Exporter) Download(ctx context.Context, rec *link.Record, logoRef string) (string, error) {
	data, name, err := e.Render(ctx, rec, logoRef)
	if err != nil {
		return "", err
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, err, "create %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, err, "write %s", path)
	}

	e.logger().Info("saved", "file", path, "bytes", len(data))
	return path, nil
}

// CopyURL places the record URL on the clipboard.
func (e *Exporter) CopyURL(rec *link.Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record is required")
	}
	if e.Clipboard == nil {
		return errors.New(errors.ErrCodeClipboard, "no clipboard available")
	}
	if err := e.Clipboard.Copy(rec.URL); err != nil {
		return errors.Wrap(errors.ErrCodeClipboard, err, "copy link")
	}
	e.logger().Debug("copied link", "record", rec.ID)
	return nil
}

// Preview opens the record URL directly. Only absolute http(s) URLs are opened.
func (e *Exporter) Preview(rec *link.Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record is required")
	}
	u, err := url.Parse(rec.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cannot open %q: not an absolute http(s) URL", rec.URL)
	}
	if e.Opener == nil {
		return errors.New(errors.ErrCodeOpen, "no opener available")
	}
	if err := e.Opener.Open(rec.URL); err != nil {
		return errors.Wrap(errors.ErrCodeOpen, err, "open %s", rec.URL)
	}
	return nil
}

func (e *Exporter) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}
