package domain_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/domain"
)

func TestFormatFromName(t *testing.T) {
	cases := map[string]domain.Format{
		"report.pdf":     domain.FormatPDF,
		"REPORT.PDF":     domain.FormatPDF,
		"notes.docx":     domain.FormatDOCX,
		"readme.txt":     domain.FormatTXT,
		"archive.tar.gz": domain.FormatUnsupported,
		"legacy.doc":     domain.FormatUnsupported,
		"noext":          domain.FormatUnsupported,
	}
	for name, want := range cases {
		assert.Equal(t, want, domain.FormatFromName(name), name)
	}
	assert.False(t, domain.FormatUnsupported.Supported())
	assert.True(t, domain.FormatDOCX.Supported())
}

func TestDocument_View_TruncatesForDisplay(t *testing.T) {
	long := strings.Repeat("a", 5000)
	doc := &domain.Document{Pages: []string{"short", long}}

	v, err := doc.View(1)
	require.NoError(t, err)
	assert.Equal(t, "short", v.Text)
	assert.False(t, v.Truncated)
	assert.Equal(t, 2, v.TotalPages)

	v, err = doc.View(2)
	require.NoError(t, err)
	assert.Len(t, v.Text, domain.PageDisplayLimit)
	assert.True(t, v.Truncated)
	assert.Len(t, doc.Pages[1], 5000, "stored page must not be truncated")
}

func TestDocument_View_CountsCharactersNotBytes(t *testing.T) {
	page := strings.Repeat("é", 3500)
	doc := &domain.Document{Pages: []string{page}}

	v, err := doc.View(1)
	require.NoError(t, err)
	assert.Equal(t, domain.PageDisplayLimit, utf8.RuneCountInString(v.Text))
	assert.True(t, v.Truncated)
}

func TestDocument_View_ExactLimitNotTruncated(t *testing.T) {
	page := strings.Repeat("x", domain.PageDisplayLimit)
	doc := &domain.Document{Pages: []string{page}}

	v, err := doc.View(1)
	require.NoError(t, err)
	assert.Equal(t, page, v.Text)
	assert.False(t, v.Truncated)
}

func TestDocument_View_OutOfRange(t *testing.T) {
	doc := &domain.Document{Pages: []string{"one", "two"}}

	for _, idx := range []int{0, -1, 3} {
		_, err := doc.View(idx)
		assert.ErrorIs(t, err, domain.ErrPageOutOfRange, "index %d", idx)
	}
}

func TestDocument_FullText(t *testing.T) {
	doc := &domain.Document{Pages: []string{"a", "", "c"}}
	assert.Equal(t, "a\n\nc", doc.FullText())
	assert.Equal(t, 3, doc.TotalPages())
}

func TestAppendExchange_Order(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var log []domain.ChatTurn

	log = domain.AppendExchange(log, "hi", "hello", at)
	log = domain.AppendExchange(log, "how are you?", "fine", at)

	require.Len(t, log, 4)
	assert.Equal(t, domain.RoleUser, log[0].Role)
	assert.Equal(t, "hi", log[0].Message)
	assert.Equal(t, domain.RoleAssistant, log[1].Role)
	assert.Equal(t, "hello", log[1].Message)
	assert.Equal(t, domain.RoleUser, log[2].Role)
	assert.Equal(t, domain.RoleAssistant, log[3].Role)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := &domain.Session{LastSeenAt: now.Add(-2 * time.Hour)}

	assert.True(t, s.Expired(now, time.Hour))
	assert.False(t, s.Expired(now, 3*time.Hour))
	assert.False(t, s.Expired(now, 0), "zero ttl never expires")
}

func TestParseExportFormat(t *testing.T) {
	f, err := domain.ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportCSV, f)

	f, err = domain.ParseExportFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportXLSX, f)

	_, err = domain.ParseExportFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedExport)
}
