package gsheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"
)

func newPreviewSpreadsheet(t *testing.T) *Spreadsheet {
	t.Helper()
	sp, err := Open(context.Background(), Config{
		Name:         "Budget Tracker",
		LocalPreview: true,
		PreviewDir:   t.TempDir(),
	})
	require.NoError(t, err)
	return sp
}

func TestPreviewFlush_RendersHTML(t *testing.T) {
	sp := newPreviewSpreadsheet(t)
	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)

	ws.WriteValues("A1:B2", [][]interface{}{
		{"title", "gross"},
		{"Dune", 100},
	})
	require.NoError(t, ws.Flush(context.Background()))

	path, err := ws.PreviewPath()
	require.NoError(t, err)
	assert.Equal(t, "Budget_Tracker_Revenue_preview.html", filepath.Base(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "<h1>Sheet Preview: Local Preview - Revenue</h1>")
	assert.Contains(t, html, "<h2>Local Preview - Revenue!A1:B2</h2>")
	assert.Contains(t, html, "<td>title</td><td>gross</td>")
	assert.Contains(t, html, "<td>Dune</td><td>100</td>")
}

func TestPreviewFlush_CellTextIsNotEscaped(t *testing.T) {
	sp := newPreviewSpreadsheet(t)
	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)

	ws.WriteValues("A1", [][]interface{}{{"<b>bold & raw</b>"}})
	require.NoError(t, ws.Flush(context.Background()))

	path, _ := ws.PreviewPath()
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<td><b>bold & raw</b></td>")
}

func TestPreviewFlush_OverwritesSameFile(t *testing.T) {
	sp := newPreviewSpreadsheet(t)
	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)

	ws.WriteValues("A1", [][]interface{}{{"first"}})
	require.NoError(t, ws.Flush(context.Background()))

	ws.WriteValues("A1", [][]interface{}{{"second"}})
	require.NoError(t, ws.Flush(context.Background()))

	path, _ := ws.PreviewPath()
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "second")
	assert.NotContains(t, string(body), "first")
}

func TestPreviewFlush_DropsStructuralOps(t *testing.T) {
	sp := newPreviewSpreadsheet(t)
	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)

	ws.Format("A1:B2", &sheets.CellFormat{})
	ws.FreezeRows(1)
	require.NoError(t, ws.Flush(context.Background()))

	assert.Equal(t, 0, ws.QueuedRequests(), "queue cleared even though ops render nothing")

	path, _ := ws.PreviewPath()
	_, err = os.Stat(path)
	assert.NoError(t, err, "flush still writes the document")
}

func TestPreviewFlush_ClearsQueue(t *testing.T) {
	sp := newPreviewSpreadsheet(t)
	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)

	ws.WriteValues("A1", [][]interface{}{{"v"}})
	require.NoError(t, ws.Flush(context.Background()))
	assert.Equal(t, 0, ws.QueuedWrites())
}

func TestPreviewFlush_CreatesPreviewDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "previews")
	sp, err := Open(context.Background(), Config{
		Name:         "Budget Tracker",
		LocalPreview: true,
		PreviewDir:   dir,
	})
	require.NoError(t, err)

	ws, err := sp.Worksheet(context.Background(), "Revenue")
	require.NoError(t, err)
	ws.WriteValues("A1", [][]interface{}{{"v"}})
	require.NoError(t, ws.Flush(context.Background()))

	path, _ := ws.PreviewPath()
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
