package gsheet

import (
	"context"
	"sort"
	"strings"

	"google.golang.org/api/sheets/v4"

	"sheetq/pkg/cellref"
	"sheetq/pkg/frame"
)

// Worksheet is a handle on one tab. Write and format calls queue locally in
// insertion order and hit the network (or the preview file) only on Flush.
// Not safe for concurrent use; callers serialize access per handle.
type Worksheet struct {
	sp         *Spreadsheet
	name       string
	sheetID    int64
	preview    bool
	previewOut string

	valueWrites []ValueWrite
	requests    []StructuralOp
}

func (s *Spreadsheet) newRemoteWorksheet(name string, sheetID int64) *Worksheet {
	return &Worksheet{sp: s, name: name, sheetID: sheetID}
}

func (s *Spreadsheet) newPreviewWorksheet(name string) *Worksheet {
	return &Worksheet{
		sp:         s,
		name:       name,
		preview:    true,
		previewOut: s.previewPath(name),
	}
}

// Title returns the tab title. In preview mode it is a synthetic display
// label, never sent anywhere.
func (w *Worksheet) Title() string {
	if w.preview {
		return "Local Preview - " + w.name
	}
	return w.name
}

// IsLocalPreview reports whether this handle renders locally.
func (w *Worksheet) IsLocalPreview() bool { return w.preview }

// WriteValues queues a cell-value update. If rangeName carries no sheet
// qualifier the worksheet title is prefixed.
func (w *Worksheet) WriteValues(rangeName string, values [][]interface{}) {
	if !strings.Contains(rangeName, "!") {
		rangeName = w.Title() + "!" + rangeName
	}
	w.valueWrites = append(w.valueWrites, ValueWrite{Range: rangeName, Values: values})
}

// FrameOptions adjusts WriteFrame. The zero value writes the frame at A1
// with its header row and no formatting.
type FrameOptions struct {
	// Location is the top-left cell for the write (default "A1").
	Location string
	// OmitHeader drops the column-name row.
	OmitHeader bool
	// Formats maps range names to cell formats queued after the write.
	Formats map[string]*sheets.CellFormat
}

// WriteFrame queues a frame write with optional formatting. Format ranges
// are queued in sorted order so repeated flushes are deterministic.
func (w *Worksheet) WriteFrame(f *frame.Frame, opt FrameOptions) {
	location := opt.Location
	if location == "" {
		location = "A1"
	}
	w.valueWrites = append(w.valueWrites, ValueWrite{
		Range:  w.Title() + "!" + location,
		Values: f.Values(!opt.OmitHeader),
	})

	ranges := make([]string, 0, len(opt.Formats))
	for r := range opt.Formats {
		ranges = append(ranges, r)
	}
	sort.Strings(ranges)
	for _, r := range ranges {
		w.Format(r, opt.Formats[r])
	}
}

// Format queues cell formatting for a range.
func (w *Worksheet) Format(rangeName string, format *sheets.CellFormat) {
	w.enqueue(OpFormat, formatOp{Range: rangeName, Format: format})
}

// SetBorders queues border formatting for a range.
func (w *Worksheet) SetBorders(rangeName string, borders Borders) {
	w.enqueue(OpBorder, borderOp{Range: rangeName, Borders: borders})
}

// SetColumnWidth queues a pixel width for one column, addressed by letter.
func (w *Worksheet) SetColumnWidth(column string, width int64) error {
	col, err := cellref.NameToCol(column)
	if err != nil {
		return err
	}
	w.enqueue(OpColumnWidth, columnWidthOp{Column: col, Width: width})
	return nil
}

// AutoResizeColumns queues auto-resize for an inclusive 1-based column span.
func (w *Worksheet) AutoResizeColumns(startCol, endCol int) {
	w.enqueue(OpAutoResize, autoResizeOp{StartCol: startCol, EndCol: endCol})
}

// SetNotes queues cell notes, mapping cell references to note text.
func (w *Worksheet) SetNotes(notes map[string]string) {
	w.enqueue(OpNotes, notesOp{Notes: notes})
}

// MergeCells queues a merge. An empty mergeType defaults to MERGE_ALL.
func (w *Worksheet) MergeCells(rangeName, mergeType string) {
	if mergeType == "" {
		mergeType = MergeAll
	}
	w.enqueue(OpMerge, mergeOp{Range: rangeName, MergeType: mergeType})
}

// UnmergeCells queues an unmerge.
func (w *Worksheet) UnmergeCells(rangeName string) {
	w.enqueue(OpUnmerge, unmergeOp{Range: rangeName})
}

// SortRange queues a sort. Spec columns are 0-based within the range.
func (w *Worksheet) SortRange(rangeName string, specs []SortSpec) {
	w.enqueue(OpSort, sortOp{Range: rangeName, Specs: specs})
}

// SetDataValidation queues a validation rule for a range.
func (w *Worksheet) SetDataValidation(rangeName string, rule *sheets.DataValidationRule) {
	w.enqueue(OpDataValidation, dataValidationOp{Range: rangeName, Rule: rule})
}

// ClearDataValidation queues removal of validation rules from a range.
func (w *Worksheet) ClearDataValidation(rangeName string) {
	w.enqueue(OpClearDataValidation, clearDataValidationOp{Range: rangeName})
}

// AddConditionalFormat queues a conditional formatting rule.
func (w *Worksheet) AddConditionalFormat(rangeName string, rule *sheets.BooleanRule) {
	w.enqueue(OpConditionalFormat, conditionalFormatOp{Range: rangeName, Rule: rule})
}

// InsertRows queues insertion of numRows rows at the 1-based startRow.
func (w *Worksheet) InsertRows(startRow, numRows int) {
	w.enqueue(OpInsertRows, dimensionOp{Start: startRow, Count: numRows})
}

// DeleteRows queues deletion of numRows rows from the 1-based startRow.
func (w *Worksheet) DeleteRows(startRow, numRows int) {
	w.enqueue(OpDeleteRows, dimensionOp{Start: startRow, Count: numRows})
}

// InsertColumns queues insertion of numCols columns at the 1-based startCol.
func (w *Worksheet) InsertColumns(startCol, numCols int) {
	w.enqueue(OpInsertColumns, dimensionOp{Start: startCol, Count: numCols})
}

// DeleteColumns queues deletion of numCols columns from the 1-based startCol.
func (w *Worksheet) DeleteColumns(startCol, numCols int) {
	w.enqueue(OpDeleteColumns, dimensionOp{Start: startCol, Count: numCols})
}

// FreezeRows queues freezing of the top numRows rows (0 unfreezes).
func (w *Worksheet) FreezeRows(numRows int) {
	w.enqueue(OpFreezeRows, freezeOp{Count: numRows})
}

// FreezeColumns queues freezing of the left numCols columns (0 unfreezes).
func (w *Worksheet) FreezeColumns(numCols int) {
	w.enqueue(OpFreezeColumns, freezeOp{Count: numCols})
}

// AddRawRequest queues a batchUpdate request forwarded verbatim, for
// operations not otherwise modeled.
func (w *Worksheet) AddRawRequest(req *sheets.Request) {
	w.enqueue(OpRaw, rawOp{Request: req})
}

func (w *Worksheet) enqueue(kind OpKind, payload interface{}) {
	w.requests = append(w.requests, StructuralOp{Kind: kind, Payload: payload})
}

// QueuedWrites returns the number of pending value writes.
func (w *Worksheet) QueuedWrites() int { return len(w.valueWrites) }

// QueuedRequests returns the number of pending structural operations.
func (w *Worksheet) QueuedRequests() int { return len(w.requests) }

// Flush commits every queued operation: all value writes in one batched
// call, then each structural op as its own call, in enqueue order. The
// queue is cleared only if the sink returns nil; after a partial failure
// the full queue remains and a repeat Flush re-executes everything from
// the start, including operations that already succeeded remotely.
func (w *Worksheet) Flush(ctx context.Context) error {
	var dst sink
	if w.preview {
		dst = &previewSink{path: w.previewOut, title: w.Title()}
	} else {
		dst = &apiSink{sp: w.sp, sheetID: w.sheetID}
	}

	if err := dst.commit(ctx, w.valueWrites, w.requests); err != nil {
		return err
	}
	w.valueWrites = nil
	w.requests = nil
	return nil
}

// Do runs fn against the worksheet and flushes on success only. If fn
// returns an error the queue is left intact for the caller to inspect or
// retry.
func (w *Worksheet) Do(ctx context.Context, fn func(*Worksheet) error) error {
	if err := fn(w); err != nil {
		return err
	}
	return w.Flush(ctx)
}

// Read fetches the worksheet contents, first row as headers. Remote mode
// only; the call is direct, outside the retry executor.
func (w *Worksheet) Read(ctx context.Context) (*frame.Frame, error) {
	if w.preview {
		return nil, ErrRemoteOnly
	}
	values, err := w.sp.backend.Values(ctx, w.name)
	if err != nil {
		return nil, err
	}
	return frame.FromValues(values), nil
}

// PreviewPath returns where Flush renders this worksheet. Preview mode only.
func (w *Worksheet) PreviewPath() (string, error) {
	if !w.preview {
		return "", ErrPreviewOnly
	}
	return w.previewOut, nil
}
