package gsheet

import "errors"

var (
	// ErrCredentialsRequired is returned by Open when neither credentials
	// nor local preview mode are configured.
	ErrCredentialsRequired = errors.New("credentials required unless local preview is enabled")

	// ErrWorksheetNotFound is returned when a named worksheet does not
	// exist in the spreadsheet.
	ErrWorksheetNotFound = errors.New("worksheet not found")

	// ErrRemoteOnly is returned when a capability that needs the remote
	// API (such as Read) is invoked in local preview mode.
	ErrRemoteOnly = errors.New("not available in local preview mode")

	// ErrPreviewOnly is returned when a preview-only capability (such as
	// PreviewPath) is invoked in remote mode.
	ErrPreviewOnly = errors.New("only available in local preview mode")
)
