package gsheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"sheetq/pkg/cellref"
)

// gridRange converts an A1 range to the API's half-open GridRange. A
// leading "Title!" qualifier is stripped; the sheet identity comes from
// sheetID. Open-ended forms are supported: "A5:A" (unbounded rows),
// "A:C" (whole columns), "1:3" (whole rows).
func gridRange(sheetID int64, rangeA1 string) (*sheets.GridRange, error) {
	if i := strings.LastIndex(rangeA1, "!"); i >= 0 {
		rangeA1 = rangeA1[i+1:]
	}
	if rangeA1 == "" {
		return nil, fmt.Errorf("empty range")
	}

	parts := strings.SplitN(rangeA1, ":", 2)
	start, err := parseA1Side(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", rangeA1, err)
	}
	end := start
	if len(parts) == 2 {
		end, err = parseA1Side(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", rangeA1, err)
		}
	}

	g := &sheets.GridRange{SheetId: sheetID}
	if start.hasCol {
		g.StartColumnIndex = int64(start.col)
	}
	if start.hasRow {
		g.StartRowIndex = int64(start.row - 1)
	}
	if end.hasCol {
		g.EndColumnIndex = int64(end.col) + 1
	}
	if end.hasRow {
		g.EndRowIndex = int64(end.row)
	}
	g.ForceSendFields = []string{"StartColumnIndex", "StartRowIndex"}
	return g, nil
}

type a1Side struct {
	hasCol bool
	col    int // 0-based
	hasRow bool
	row    int // 1-based
}

func parseA1Side(s string) (a1Side, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= 'A' && s[i] <= 'Z' || s[i] >= 'a' && s[i] <= 'z') {
		i++
	}

	var side a1Side
	if i > 0 {
		col, err := cellref.NameToCol(s[:i])
		if err != nil {
			return a1Side{}, err
		}
		side.hasCol = true
		side.col = col
	}
	if i < len(s) {
		row, err := strconv.Atoi(s[i:])
		if err != nil || row < 1 {
			return a1Side{}, fmt.Errorf("invalid row in %q", s)
		}
		side.hasRow = true
		side.row = row
	}
	if !side.hasCol && !side.hasRow {
		return a1Side{}, fmt.Errorf("invalid cell %q", s)
	}
	return side, nil
}

// requestsFor maps one queued structural op to the batchUpdate requests of
// its single remote call. Most kinds produce one request; notes produce one
// per cell, still committed in a single call.
func requestsFor(sheetID int64, op StructuralOp) ([]*sheets.Request, error) {
	switch p := op.Payload.(type) {
	case formatOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range:  g,
				Cell:   &sheets.CellData{UserEnteredFormat: p.Format},
				Fields: "userEnteredFormat",
			},
		}}, nil

	case borderOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			UpdateBorders: &sheets.UpdateBordersRequest{
				Range:           g,
				Top:             p.Borders.Top,
				Bottom:          p.Borders.Bottom,
				Left:            p.Borders.Left,
				Right:           p.Borders.Right,
				InnerHorizontal: p.Borders.InnerHorizontal,
				InnerVertical:   p.Borders.InnerVertical,
			},
		}}, nil

	case columnWidthOp:
		return []*sheets.Request{{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(p.Column),
					EndIndex:   int64(p.Column) + 1,
				},
				Properties: &sheets.DimensionProperties{PixelSize: p.Width},
				Fields:     "pixelSize",
			},
		}}, nil

	case autoResizeOp:
		return []*sheets.Request{{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(p.StartCol - 1),
					EndIndex:   int64(p.EndCol),
				},
			},
		}}, nil

	case notesOp:
		cells := make([]string, 0, len(p.Notes))
		for cell := range p.Notes {
			cells = append(cells, cell)
		}
		sort.Strings(cells)

		reqs := make([]*sheets.Request, 0, len(cells))
		for _, cell := range cells {
			g, err := gridRange(sheetID, cell)
			if err != nil {
				return nil, err
			}
			reqs = append(reqs, &sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range:  g,
					Cell:   &sheets.CellData{Note: p.Notes[cell]},
					Fields: "note",
				},
			})
		}
		return reqs, nil

	case mergeOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			MergeCells: &sheets.MergeCellsRequest{Range: g, MergeType: p.MergeType},
		}}, nil

	case unmergeOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			UnmergeCells: &sheets.UnmergeCellsRequest{Range: g},
		}}, nil

	case sortOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		specs := make([]*sheets.SortSpec, len(p.Specs))
		for i, sp := range p.Specs {
			order := "DESCENDING"
			if sp.Ascending {
				order = "ASCENDING"
			}
			// Spec columns are relative to the range.
			specs[i] = &sheets.SortSpec{
				DimensionIndex: g.StartColumnIndex + int64(sp.Column),
				SortOrder:      order,
			}
		}
		return []*sheets.Request{{
			SortRange: &sheets.SortRangeRequest{Range: g, SortSpecs: specs},
		}}, nil

	case dataValidationOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			SetDataValidation: &sheets.SetDataValidationRequest{Range: g, Rule: p.Rule},
		}}, nil

	case clearDataValidationOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		// A nil rule clears validation from the range.
		return []*sheets.Request{{
			SetDataValidation: &sheets.SetDataValidationRequest{Range: g},
		}}, nil

	case conditionalFormatOp:
		g, err := gridRange(sheetID, p.Range)
		if err != nil {
			return nil, err
		}
		return []*sheets.Request{{
			AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
				Rule: &sheets.ConditionalFormatRule{
					Ranges:      []*sheets.GridRange{g},
					BooleanRule: p.Rule,
				},
			},
		}}, nil

	case dimensionOp:
		var dimension string
		switch op.Kind {
		case OpInsertRows, OpDeleteRows:
			dimension = "ROWS"
		default:
			dimension = "COLUMNS"
		}
		dr := &sheets.DimensionRange{
			SheetId:         sheetID,
			Dimension:       dimension,
			StartIndex:      int64(p.Start - 1),
			EndIndex:        int64(p.Start - 1 + p.Count),
			ForceSendFields: []string{"StartIndex"},
		}
		if op.Kind == OpInsertRows || op.Kind == OpInsertColumns {
			return []*sheets.Request{{
				InsertDimension: &sheets.InsertDimensionRequest{Range: dr},
			}}, nil
		}
		return []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{Range: dr},
		}}, nil

	case freezeOp:
		props := &sheets.SheetProperties{
			SheetId:        sheetID,
			GridProperties: &sheets.GridProperties{},
		}
		var fields string
		if op.Kind == OpFreezeRows {
			props.GridProperties.FrozenRowCount = int64(p.Count)
			props.GridProperties.ForceSendFields = []string{"FrozenRowCount"}
			fields = "gridProperties.frozenRowCount"
		} else {
			props.GridProperties.FrozenColumnCount = int64(p.Count)
			props.GridProperties.ForceSendFields = []string{"FrozenColumnCount"}
			fields = "gridProperties.frozenColumnCount"
		}
		return []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: props,
				Fields:     fields,
			},
		}}, nil

	case rawOp:
		return []*sheets.Request{p.Request}, nil
	}

	return nil, fmt.Errorf("unknown structural op kind %q", op.Kind)
}
