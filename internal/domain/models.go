package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PageDisplayLimit is the maximum number of characters returned when viewing a page.
const PageDisplayLimit = 3000

// Document is the text extracted from one uploaded file. Pages are never
// mutated after extraction.
type Document struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	Format     Format    `json:"format"`
	Pages      []string  `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PageView is one page of a document, truncated for display.
type PageView struct {
	Index      int    `json:"index"`
	TotalPages int    `json:"total_pages"`
	Text       string `json:"text"`
	Truncated  bool   `json:"truncated"`
}

// TotalPages returns the number of pages in the document.
func (d *Document) TotalPages() int {
	return len(d.Pages)
}

// FullText joins all pages with newline separators, in page order.
func (d *Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// View returns the 1-based page index truncated to PageDisplayLimit characters.
func (d *Document) View(index int) (*PageView, error) {
	if index < 1 || index > len(d.Pages) {
		return nil, ErrPageOutOfRange
	}
	text, truncated := TruncateRunes(d.Pages[index-1], PageDisplayLimit)
	return &PageView{
		Index:      index,
		TotalPages: len(d.Pages),
		Text:       text,
		Truncated:  truncated,
	}, nil
}

// TruncateRunes cuts s to at most limit characters.
func TruncateRunes(s string, limit int) (string, bool) {
	if len(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

// ChatTurn is one entry of a conversation log.
type ChatTurn struct {
	Role    ChatRole  `json:"role"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// AppendExchange returns the log with the user turn and assistant reply
// appended in chronological order.
func AppendExchange(history []ChatTurn, message, reply string, at time.Time) []ChatTurn {
	return append(history,
		ChatTurn{Role: RoleUser, Message: message, At: at},
		ChatTurn{Role: RoleAssistant, Message: reply, At: at},
	)
}

// Session is the per-client state held in memory between requests.
type Session struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	LastSeenAt  time.Time
	History     []ChatTurn
	Document    *Document
	LastSummary string
}

// Expired reports whether the session has been idle for longer than ttl.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastSeenAt) > ttl
}

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Amount      float64 `json:"amount"`
	Rate        float64 `json:"rate"`
	Converted   float64 `json:"converted"`
	Summary     string  `json:"summary"`
	RateCaption string  `json:"rate_caption"`
}

// VideoEmbed describes an embeddable video resolved from a pasted URL.
type VideoEmbed struct {
	VideoID   string `json:"video_id"`
	EmbedURL  string `json:"embed_url"`
	EmbedHTML string `json:"embed_html"`
}
