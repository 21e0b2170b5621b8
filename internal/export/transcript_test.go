package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"focusbot/internal/domain"
)

func sampleHistory() []domain.ChatTurn {
	at := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	return domain.AppendExchange(nil, "What is Go?", "A programming language, \"simple\", fast.", at)
}

func TestTranscript_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Transcript(&buf, domain.ExportCSV, sampleHistory()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, BOM))

	rows, err := csv.NewReader(bytes.NewReader(raw[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Role", "Message", "Time"}, rows[0])
	assert.Equal(t, []string{"1", "user", "What is Go?", "2025-01-15T09:30:00Z"}, rows[1])
	assert.Equal(t, "assistant", rows[2][1])
	assert.Equal(t, "A programming language, \"simple\", fast.", rows[2][2])
}

func TestTranscript_CSV_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Transcript(&buf, domain.ExportCSV, nil))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTranscript_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Transcript(&buf, domain.ExportXLSX, sampleHistory()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Role", rows[0][1])
	assert.Equal(t, "What is Go?", rows[1][2])
	assert.Equal(t, "assistant", rows[2][1])
}

func TestTranscript_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Transcript(&buf, domain.ExportFormat("pdf"), sampleHistory())
	assert.ErrorIs(t, err, domain.ErrUnsupportedExport)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(domain.ExportCSV))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType(domain.ExportXLSX))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Chat with FocusBot", "Chat_with_FocusBot"},
		{"special chars", "notes / week (3)", "notes_week_3"},
		{"hyphens and underscores preserved", "my-chat_2025", "my-chat_2025"},
		{"consecutive underscores collapsed", "a___b", "a_b"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "focusbot_chat_2025-06-01.csv", BuildFilename("focusbot chat", domain.ExportCSV, now))
	assert.Equal(t, "transcript_2025-06-01.xlsx", BuildFilename("///", domain.ExportXLSX, now))
}
