package frame

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValues_WithHeader(t *testing.T) {
	f := New([]string{"name", "count"}, [][]interface{}{
		{"widgets", 3},
		{"gadgets", 7},
	})

	got := f.Values(true)
	want := [][]interface{}{
		{"name", "count"},
		{"widgets", 3},
		{"gadgets", 7},
	}
	assert.Equal(t, want, got)
}

func TestValues_WithoutHeader(t *testing.T) {
	f := New([]string{"name", "count"}, [][]interface{}{{"widgets", 3}})

	got := f.Values(false)
	assert.Equal(t, [][]interface{}{{"widgets", 3}}, got)
}

func TestValues_PadsShortRows(t *testing.T) {
	f := New([]string{"a", "b", "c"}, [][]interface{}{{"only"}})

	got := f.Values(false)
	assert.Equal(t, [][]interface{}{{"only", "", ""}}, got)
}

func TestFromValues(t *testing.T) {
	f := FromValues([][]interface{}{
		{"name", "count"},
		{"widgets", "3"},
	})
	assert.Equal(t, []string{"name", "count"}, f.Columns)
	assert.Equal(t, 1, f.NumRows())
	assert.Equal(t, 2, f.NumCols())
}

func TestFromValues_Empty(t *testing.T) {
	f := FromValues(nil)
	assert.Equal(t, 0, f.NumRows())
	assert.Equal(t, 0, f.NumCols())
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,count\nwidgets,3\ngadgets,7\n"), 0644))

	f, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count"}, f.Columns)
	assert.Equal(t, [][]interface{}{
		{"widgets", "3"},
		{"gadgets", "7"},
	}, f.Rows)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "count"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]interface{}{"widgets", 3}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	f, err := ReadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count"}, f.Columns)
	assert.Equal(t, 1, f.NumRows())
	assert.Equal(t, "widgets", f.Rows[0][0])
}

func TestReadXLSX_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	_, err := ReadXLSX(path, "DoesNotExist")
	assert.Error(t, err)
}
