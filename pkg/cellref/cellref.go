// Package cellref provides parsing and rendering of A1-notation cell
// references and ranges, including the bijective base-26 arithmetic that
// maps column letters to indexes ("A"=1, ..., "Z"=26, "AA"=27, ...).
package cellref

import (
	"fmt"
	"strings"
)

// Cell is a single cell position. Column and row are 1-based; the zero
// value is not a valid cell.
type Cell struct {
	Col int // 1-based column (bijective base-26 numeral)
	Row int // 1-based row
}

// Name renders the cell in A1 notation, e.g. {Col: 2, Row: 4} → "B4".
func (c Cell) Name() string {
	return ColToName(c.Col-1) + fmt.Sprintf("%d", c.Row)
}

// String implements fmt.Stringer.
func (c Cell) String() string { return c.Name() }

// Range is a rectangular cell range. Start must not exceed End on either
// axis; NewRange and Parse document that contract — out-of-order bounds are
// a caller error, not something this package corrects.
type Range struct {
	Start Cell
	End   Cell
}

// NewRange builds a Range from two cells. Callers must pass normalized
// bounds (Start.Col <= End.Col and Start.Row <= End.Row).
func NewRange(start, end Cell) Range {
	return Range{Start: start, End: end}
}

// Parse parses "B4", "B4:E14", or "b4:e14" (case-insensitive) into a Range.
// A single cell yields Start == End.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	parts := strings.SplitN(s, ":", 2)
	start, err := parseCell(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if len(parts) == 1 {
		return Range{Start: start, End: start}, nil
	}

	end, err := parseCell(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return Range{Start: start, End: end}, nil
}

// FromBounds builds a Range from 0-indexed row/column bounds, the inverse
// of the zero-indexed accessors: FromBounds(3, 1, 13, 4) renders "B4:E14".
func FromBounds(startRow, startCol, endRow, endCol int) Range {
	return Range{
		Start: Cell{Col: startCol + 1, Row: startRow + 1},
		End:   Cell{Col: endCol + 1, Row: endRow + 1},
	}
}

// parseCell parses a single "COLROW" token like "AA10".
func parseCell(s string) (Cell, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return Cell{}, fmt.Errorf("invalid cell %q", s)
	}

	col, err := NameToCol(s[:i])
	if err != nil {
		return Cell{}, err
	}

	row := 0
	for _, ch := range s[i:] {
		if ch < '0' || ch > '9' {
			return Cell{}, fmt.Errorf("invalid row in cell %q", s)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return Cell{}, fmt.Errorf("invalid row number in cell %q", s)
	}

	return Cell{Col: col + 1, Row: row}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// IsSingleCell reports whether the range covers exactly one cell.
func (r Range) IsSingleCell() bool { return r.Start == r.End }

// StartRow returns the 0-indexed start row.
func (r Range) StartRow() int { return r.Start.Row - 1 }

// EndRow returns the 0-indexed end row.
func (r Range) EndRow() int { return r.End.Row - 1 }

// StartCol returns the 0-indexed start column.
func (r Range) StartCol() int { return r.Start.Col - 1 }

// EndCol returns the 0-indexed end column.
func (r Range) EndCol() int { return r.End.Col - 1 }

// StartRow1 returns the 1-based start row as parsed.
func (r Range) StartRow1() int { return r.Start.Row }

// EndRow1 returns the 1-based end row as parsed.
func (r Range) EndRow1() int { return r.End.Row }

// StartColLetter returns the start column letters, e.g. "B".
func (r Range) StartColLetter() string { return ColToName(r.StartCol()) }

// EndColLetter returns the end column letters, e.g. "E".
func (r Range) EndColLetter() string { return ColToName(r.EndCol()) }

// NumRows returns the number of rows in the range, always >= 1.
func (r Range) NumRows() int { return r.EndRow() - r.StartRow() + 1 }

// NumCols returns the number of columns in the range, always >= 1.
func (r Range) NumCols() int { return r.EndCol() - r.StartCol() + 1 }

// String renders the canonical A1 form. A single-cell range renders as the
// bare cell ("A1", never "A1:A1"), so parse→render is idempotent and an
// explicit "A1:A1" collapses to "A1".
func (r Range) String() string {
	if r.IsSingleCell() {
		return r.Start.Name()
	}
	return r.Start.Name() + ":" + r.End.Name()
}

// ColToName converts a 0-based column index to column letters.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA".
func ColToName(col int) string {
	result := ""
	col++ // 1-based for the bijective numeral
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts column letters to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26. Case-insensitive; no upper bound on length.
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}
