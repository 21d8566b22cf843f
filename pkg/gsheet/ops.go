package gsheet

import "google.golang.org/api/sheets/v4"

// ValueWrite is a queued cell-value update. Range is sheet-qualified A1
// notation; Values is the row-major grid to write.
type ValueWrite struct {
	Range  string
	Values [][]interface{}
}

// OpKind tags a queued structural operation.
type OpKind string

const (
	OpFormat              OpKind = "format"
	OpBorder              OpKind = "border"
	OpColumnWidth         OpKind = "column_width"
	OpAutoResize          OpKind = "auto_resize"
	OpNotes               OpKind = "notes"
	OpMerge               OpKind = "merge"
	OpUnmerge             OpKind = "unmerge"
	OpSort                OpKind = "sort"
	OpDataValidation      OpKind = "data_validation"
	OpClearDataValidation OpKind = "clear_data_validation"
	OpConditionalFormat   OpKind = "conditional_format"
	OpInsertRows          OpKind = "insert_rows"
	OpDeleteRows          OpKind = "delete_rows"
	OpInsertColumns       OpKind = "insert_columns"
	OpDeleteColumns       OpKind = "delete_columns"
	OpFreezeRows          OpKind = "freeze_rows"
	OpFreezeColumns       OpKind = "freeze_columns"
	OpRaw                 OpKind = "raw"
)

// StructuralOp is a queued non-value mutation. Payload is one of the
// kind-specific payload types below; the queue does not validate payloads
// beyond their shape — the remote service is the ultimate validator.
type StructuralOp struct {
	Kind    OpKind
	Payload interface{}
}

// Merge types accepted by MergeCells.
const (
	MergeAll     = "MERGE_ALL"
	MergeColumns = "MERGE_COLUMNS"
	MergeRows    = "MERGE_ROWS"
)

// SortSpec orders one column within a sorted range. Column is a 0-based
// index within the range, not an absolute sheet column.
type SortSpec struct {
	Column    int
	Ascending bool
}

// Borders specifies the border sides for SetBorders. Nil sides are left
// unchanged.
type Borders struct {
	Top             *sheets.Border
	Bottom          *sheets.Border
	Left            *sheets.Border
	Right           *sheets.Border
	InnerHorizontal *sheets.Border
	InnerVertical   *sheets.Border
}

type formatOp struct {
	Range  string
	Format *sheets.CellFormat
}

type borderOp struct {
	Range   string
	Borders Borders
}

type columnWidthOp struct {
	Column int // 0-based
	Width  int64
}

type autoResizeOp struct {
	StartCol int // 1-based, inclusive
	EndCol   int // 1-based, inclusive
}

type notesOp struct {
	Notes map[string]string
}

type mergeOp struct {
	Range     string
	MergeType string
}

type unmergeOp struct {
	Range string
}

type sortOp struct {
	Range string
	Specs []SortSpec
}

type dataValidationOp struct {
	Range string
	Rule  *sheets.DataValidationRule
}

type clearDataValidationOp struct {
	Range string
}

type conditionalFormatOp struct {
	Range string
	Rule  *sheets.BooleanRule
}

// dimensionOp covers insert/delete of rows and columns. Start is 1-based.
type dimensionOp struct {
	Start int
	Count int
}

type freezeOp struct {
	Count int
}

type rawOp struct {
	Request *sheets.Request
}
