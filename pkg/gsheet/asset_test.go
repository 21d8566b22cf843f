package gsheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"sheetq/pkg/frame"
)

func TestWriteAsset_QueuesEverythingInOrder(t *testing.T) {
	sp, _ := newTestSpreadsheet(&fakeBackend{})
	ws := sp.newRemoteWorksheet("Revenue", 100)

	err := ws.WriteAsset(Asset{
		Frame:    frame.New([]string{"title"}, [][]interface{}{{"Dune"}}),
		Location: "B4",
		Formats: map[string]*sheets.CellFormat{
			"B4:B4": {},
		},
		MergeRanges: []string{"B2:F2", "I2:X2"},
		ConditionalFormats: []ConditionalFormat{
			{Range: "X5:X100", Rule: &sheets.BooleanRule{}},
		},
		Notes:        map[string]string{"B4": "start of data"},
		ColumnWidths: map[string]int64{"A": 25, "J": 284},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ws.QueuedWrites())
	assert.Equal(t, "Revenue!B4", ws.valueWrites[0].Range)

	kinds := make([]OpKind, 0, len(ws.requests))
	for _, op := range ws.requests {
		kinds = append(kinds, op.Kind)
	}
	assert.Equal(t, []OpKind{
		OpFormat,
		OpMerge, OpMerge,
		OpConditionalFormat,
		OpNotes,
		OpColumnWidth, OpColumnWidth,
	}, kinds)
}

func TestWriteAsset_RunsPostWriteHooks(t *testing.T) {
	sp, _ := newTestSpreadsheet(&fakeBackend{})
	ws := sp.newRemoteWorksheet("Revenue", 100)

	hooked := false
	err := ws.WriteAsset(Asset{
		Frame: frame.New([]string{"a"}, nil),
		PostWrite: []func(*Worksheet) error{
			func(w *Worksheet) error {
				hooked = true
				w.FreezeRows(1)
				return nil
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, hooked)
	assert.Equal(t, 1, ws.QueuedRequests())
}

func TestWriteAsset_HookErrorStops(t *testing.T) {
	sp, _ := newTestSpreadsheet(&fakeBackend{})
	ws := sp.newRemoteWorksheet("Revenue", 100)

	boom := errors.New("hook failed")
	err := ws.WriteAsset(Asset{
		Frame:     frame.New([]string{"a"}, nil),
		PostWrite: []func(*Worksheet) error{func(*Worksheet) error { return boom }},
	})
	assert.Equal(t, boom, err)
}

func TestWriteAsset_BadColumnWidthLetter(t *testing.T) {
	sp, _ := newTestSpreadsheet(&fakeBackend{})
	ws := sp.newRemoteWorksheet("Revenue", 100)

	err := ws.WriteAsset(Asset{
		Frame:        frame.New([]string{"a"}, nil),
		ColumnWidths: map[string]int64{"7": 100},
	})
	assert.Error(t, err)
}
