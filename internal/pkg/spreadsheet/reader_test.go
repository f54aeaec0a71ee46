package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtensionAndIsSupported(t *testing.T) {
	assert.Equal(t, "xlsx", Extension("Data Penulis.XLSX"))
	assert.Equal(t, "", Extension("README"))

	for _, name := range []string{"a.xlsx", "b.XLS", "c.csv"} {
		assert.True(t, IsSupported(name), name)
	}
	for _, name := range []string{"a.pdf", "b.xlsm", "csv"} {
		assert.False(t, IsSupported(name), name)
	}
}

func TestRead_CSV(t *testing.T) {
	in := "LAPORAN\n\nNO,JUDUL,TAHUN\n1, \"Riset, Air\",2023\n2,Riset \"Tanah\",2024,extra\n"

	rows, err := Read("research.csv", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 4, "blank lines are dropped by encoding/csv")
	assert.Equal(t, []string{"NO", "JUDUL", "TAHUN"}, rows[1])
	assert.Equal(t, "Riset, Air", rows[2][1])
	assert.Equal(t, `Riset "Tanah"`, rows[3][1])
	assert.Len(t, rows[3], 4, "ragged rows are kept")
}

func TestRead_XLSXFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"NO", "NAMA"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{1, "Budi"}))
	_, err := f.NewSheet("Lain")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Lain", "A1", "ignored"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, err := Read("authors.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"NO", "NAMA"}, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, []string{"1", "Budi"}, rows[2])
}

func TestRead_Errors(t *testing.T) {
	_, err := Read("data.ods", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Read("data.xlsx", strings.NewReader("not a zip"))
	assert.ErrorContains(t, err, "failed to open xlsx")

	_, err = Read("data.xls", bytes.NewReader(make([]byte, 1024)))
	assert.ErrorContains(t, err, "failed to open xls")
}

func TestCell(t *testing.T) {
	row := []string{" 1 ", "Budi\t"}
	assert.Equal(t, "1", Cell(row, 0))
	assert.Equal(t, "Budi", Cell(row, 1))
	assert.Equal(t, "", Cell(row, 2))
	assert.Equal(t, "", Cell(row, -1))
	assert.Equal(t, "", Cell(nil, 0))
}
