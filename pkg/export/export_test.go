package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Item", "Message"},
		Wide:    []string{"Message"},
		Rows: []map[string]string{
			{"Item": "c1", "Message": "Physics - Evening (4:00 PM - 6:00 PM) overlaps with Maths - Morning, clashing for 1 hour."},
			{"Item": "c2, quoted"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "Item,Message", string(lines[0]))
	assert.Equal(t, `"c2, quoted",`, string(lines[2]))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Cart conflicts", "Student stu-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsFavourWideColumns(t *testing.T) {
	widths := columnWidths(sampleDataset())
	require.Len(t, widths, 2)
	assert.InDelta(t, pageWidth, widths[0]+widths[1], 0.001)
	assert.Greater(t, widths[1], widths[0])
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" PDF ")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	f, ok = ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, FormatCSV, f)

	_, ok = ParseFormat("xlsx")
	assert.False(t, ok)
}
