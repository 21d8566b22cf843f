// Package gsheet is a batching client for the Google Sheets API. Mutations
// on a worksheet are queued locally and committed in bulk by Flush, either
// to the remote API or, in local preview mode, to a static HTML rendering
// on disk.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	log "github.com/sirupsen/logrus"
)

// Config configures Open. Either credentials (file path or inline JSON) or
// LocalPreview must be set; supplying neither is a configuration error.
type Config struct {
	// SpreadsheetID identifies the remote document. Required in remote
	// mode, unused in preview mode.
	SpreadsheetID string

	// Name is the spreadsheet display name, used to derive preview file
	// paths. In remote mode it is replaced by the document's actual title
	// once metadata is fetched.
	Name string

	// CredentialsFile is a path to a service-account JSON key file.
	CredentialsFile string

	// CredentialsJSON is an inline service-account key, taking precedence
	// over CredentialsFile when both are set.
	CredentialsJSON []byte

	// MaxRetries caps retry attempts for transient API errors (default 5).
	MaxRetries int

	// BaseDelay is the backoff base for retries (default 2s).
	BaseDelay time.Duration

	// LocalPreview skips all remote calls and renders flushes as HTML
	// files under PreviewDir.
	LocalPreview bool

	// PreviewDir is where preview files are written (default "sheet_previews").
	PreviewDir string

	// Logger receives retry warnings; defaults to the standard logrus logger.
	Logger log.FieldLogger
}

// Spreadsheet is a handle on one spreadsheet document. It owns the remote
// connection (or preview configuration) and the shared retry policy, and
// issues worksheet handles. Not safe for concurrent use.
type Spreadsheet struct {
	backend    backend
	name       string
	preview    bool
	previewDir string
	retry      *retrier
	log        log.FieldLogger
}

// Open connects to a spreadsheet, or sets up a local preview session when
// cfg.LocalPreview is set. In remote mode the document metadata is fetched
// once to verify access and capture the display title.
func Open(ctx context.Context, cfg Config) (*Spreadsheet, error) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.PreviewDir == "" {
		cfg.PreviewDir = "sheet_previews"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	s := &Spreadsheet{
		name:       cfg.Name,
		preview:    cfg.LocalPreview,
		previewDir: cfg.PreviewDir,
		retry:      newRetrier(cfg.MaxRetries, cfg.BaseDelay, cfg.Logger),
		log:        cfg.Logger,
	}
	if cfg.LocalPreview {
		return s, nil
	}

	var opts []option.ClientOption
	switch {
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, ErrCredentialsRequired
	}

	b, err := newSheetsBackend(ctx, cfg.SpreadsheetID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	s.backend = b

	meta, err := s.backend.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}
	if meta.Properties != nil {
		s.name = meta.Properties.Title
	}
	return s, nil
}

// IsLocalPreview reports whether this session renders locally instead of
// calling the remote API.
func (s *Spreadsheet) IsLocalPreview() bool { return s.preview }

// Name returns the spreadsheet display title.
func (s *Spreadsheet) Name() string { return s.name }

// previewPath derives the preview file for a worksheet from the
// spreadsheet and worksheet names. Spaces and path separators are replaced
// so the result is a single safe filename; repeated flushes overwrite it.
func (s *Spreadsheet) previewPath(worksheetName string) string {
	return filepath.Join(s.previewDir, fmt.Sprintf("%s_%s_preview.html",
		sanitizeName(s.name), sanitizeName(worksheetName)))
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "/", "_")
}

// Worksheet returns a handle on an existing tab. In remote mode the tab is
// resolved against document metadata and ErrWorksheetNotFound is returned
// if absent. In preview mode lookup always succeeds with a synthesized
// handle; nothing is validated against a real document.
func (s *Spreadsheet) Worksheet(ctx context.Context, name string) (*Worksheet, error) {
	if s.preview {
		return s.newPreviewWorksheet(name), nil
	}

	sheetID, err := s.sheetID(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.newRemoteWorksheet(name, sheetID), nil
}

// CreateWorksheet adds a new tab with the given grid size. With replace, an
// existing tab of the same name is deleted first (best effort; a missing
// tab is not an error). Delete-then-create is not atomic. Preview mode
// returns a synthesized handle without touching anything.
func (s *Spreadsheet) CreateWorksheet(ctx context.Context, name string, rows, cols int64, replace bool) (*Worksheet, error) {
	if s.preview {
		return s.newPreviewWorksheet(name), nil
	}

	if replace {
		if err := s.DeleteWorksheet(ctx, name, true); err != nil {
			return nil, err
		}
	}

	resp, err := s.backend.BatchUpdate(ctx, []*sheets.Request{{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: name,
				GridProperties: &sheets.GridProperties{
					RowCount:    rows,
					ColumnCount: cols,
				},
			},
		},
	}})
	if err != nil {
		return nil, fmt.Errorf("create worksheet %q: %w", name, err)
	}

	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}
	return s.newRemoteWorksheet(name, sheetID), nil
}

// DeleteWorksheet removes a tab by name. A missing tab is an error unless
// ignoreMissing is set. Preview mode is a no-op.
func (s *Spreadsheet) DeleteWorksheet(ctx context.Context, name string, ignoreMissing bool) error {
	if s.preview {
		return nil
	}

	sheetID, err := s.sheetID(ctx, name)
	if err != nil {
		if ignoreMissing && errors.Is(err, ErrWorksheetNotFound) {
			return nil
		}
		return err
	}

	_, err = s.backend.BatchUpdate(ctx, []*sheets.Request{{
		DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
	}})
	if err != nil {
		return fmt.Errorf("delete worksheet %q: %w", name, err)
	}
	return nil
}

// WorksheetNames lists tab titles in the order the API returns them.
// Preview mode keeps no registry of synthesized worksheets and always
// returns an empty list.
func (s *Spreadsheet) WorksheetNames(ctx context.Context) ([]string, error) {
	if s.preview {
		return []string{}, nil
	}

	meta, err := s.backend.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			names = append(names, sh.Properties.Title)
		}
	}
	return names, nil
}

// sheetID resolves a tab title to its sheet ID via document metadata.
func (s *Spreadsheet) sheetID(ctx context.Context, name string) (int64, error) {
	meta, err := s.backend.Metadata(ctx)
	if err != nil {
		return 0, err
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrWorksheetNotFound, name)
}
