package gsheet

import (
	"sort"

	"google.golang.org/api/sheets/v4"

	"sheetq/pkg/frame"
)

// ConditionalFormat pairs a range with its conditional formatting rule.
type ConditionalFormat struct {
	Range string
	Rule  *sheets.BooleanRule
}

// Asset bundles a frame write with the formatting that dresses it: cell
// formats, merges, conditional formats, notes, column widths, and hooks
// run after everything is queued. WriteAsset queues the lot in that order.
type Asset struct {
	Frame      *frame.Frame
	Location   string // top-left cell, default "A1"
	OmitHeader bool

	Formats            map[string]*sheets.CellFormat
	MergeRanges        []string
	ConditionalFormats []ConditionalFormat
	Notes              map[string]string
	ColumnWidths       map[string]int64

	// PostWrite hooks run against the worksheet after the asset's
	// operations are queued, before any flush.
	PostWrite []func(*Worksheet) error
}

// WriteAsset queues an asset's write and formatting operations. Nothing is
// sent until Flush.
func (w *Worksheet) WriteAsset(a Asset) error {
	w.WriteFrame(a.Frame, FrameOptions{
		Location:   a.Location,
		OmitHeader: a.OmitHeader,
		Formats:    a.Formats,
	})

	for _, r := range a.MergeRanges {
		w.MergeCells(r, MergeAll)
	}
	for _, cf := range a.ConditionalFormats {
		w.AddConditionalFormat(cf.Range, cf.Rule)
	}
	if len(a.Notes) > 0 {
		w.SetNotes(a.Notes)
	}

	cols := make([]string, 0, len(a.ColumnWidths))
	for c := range a.ColumnWidths {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, c := range cols {
		if err := w.SetColumnWidth(c, a.ColumnWidths[c]); err != nil {
			return err
		}
	}

	for _, hook := range a.PostWrite {
		if err := hook(w); err != nil {
			return err
		}
	}
	return nil
}
