package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusbot/internal/domain"
	"focusbot/internal/llm"
	"focusbot/internal/port"
)

// SummaryFileName is the download name offered for a generated summary.
const SummaryFileName = "summary.txt"

// UploadDocumentInput is the DTO for uploading a document into a session.
type UploadDocumentInput struct {
	SessionID uuid.UUID
	FileName  string
	Size      int64
	Reader    io.Reader
}

// DocumentInfo describes the session's current document.
type DocumentInfo struct {
	ID         uuid.UUID        `json:"id"`
	FileName   string           `json:"file_name"`
	Format     domain.Format    `json:"format"`
	TotalPages int              `json:"total_pages"`
	UploadedAt time.Time        `json:"uploaded_at"`
	FirstPage  *domain.PageView `json:"first_page"`
}

// SummaryResult is a generated summary plus a downloadable copy.
type SummaryResult struct {
	Summary     string `json:"summary"`
	FileName    string `json:"file_name"`
	DownloadURI string `json:"download_uri"`
}

// Answer is the model's reply to a question about the current document.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DocumentService defines the document query contract.
type DocumentService interface {
	Upload(ctx context.Context, input *UploadDocumentInput) (*DocumentInfo, error)
	Current(ctx context.Context, sessionID uuid.UUID) (*DocumentInfo, error)
	Page(ctx context.Context, sessionID uuid.UUID, index int) (*domain.PageView, error)
	Summarize(ctx context.Context, sessionID uuid.UUID) (*SummaryResult, error)
	LastSummary(ctx context.Context, sessionID uuid.UUID) (string, error)
	Ask(ctx context.Context, sessionID uuid.UUID, question string) (*Answer, error)
}

type documentService struct {
	store     port.SessionStore
	extractor port.TextExtractor
	completer port.Completer
	maxBytes  int64
}

// NewDocumentService creates a new DocumentService implementation. A
// maxFileSizeMB of zero disables the upload size check.
func NewDocumentService(
	store port.SessionStore,
	extractor port.TextExtractor,
	completer port.Completer,
	maxFileSizeMB int64,
) DocumentService {
	return &documentService{
		store:     store,
		extractor: extractor,
		completer: completer,
		maxBytes:  maxFileSizeMB * 1024 * 1024,
	}
}

func (s *documentService) Upload(ctx context.Context, input *UploadDocumentInput) (*DocumentInfo, error) {
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if _, err := s.store.Get(ctx, input.SessionID); err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(ctx, input.FileName, input.Reader)
	if err != nil {
		log.Printf("documentService.Upload: extracting %q for session %s: %v", input.FileName, input.SessionID, err)
		return nil, err
	}

	err = s.store.Update(ctx, input.SessionID, func(sess *domain.Session) error {
		sess.Document = doc
		sess.LastSummary = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("documentService.Upload: session %s loaded %q (%s, %d pages)",
		input.SessionID, doc.FileName, doc.Format, doc.TotalPages())
	return describe(doc), nil
}

func (s *documentService) Current(ctx context.Context, sessionID uuid.UUID) (*DocumentInfo, error) {
	doc, err := s.currentDocument(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return describe(doc), nil
}

func (s *documentService) Page(ctx context.Context, sessionID uuid.UUID, index int) (*domain.PageView, error) {
	doc, err := s.currentDocument(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view, err := doc.View(index)
	if err != nil {
		return nil, fmt.Errorf("page %d of %d: %w", index, doc.TotalPages(), err)
	}
	return view, nil
}

func (s *documentService) Summarize(ctx context.Context, sessionID uuid.UUID) (*SummaryResult, error) {
	doc, err := s.currentDocument(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary, err := s.completer.Complete(ctx, llm.SummarizePrompt(doc.Pages))
	if err != nil {
		log.Printf("documentService.Summarize: %s failed for document %s: %v", s.completer.Name(), doc.ID, err)
		return nil, modelError("summarize", err)
	}

	// A concurrent upload may have replaced the document while the model ran.
	err = s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.Document != nil && sess.Document.ID == doc.ID {
			sess.LastSummary = summary
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Summary:     summary,
		FileName:    SummaryFileName,
		DownloadURI: "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte(summary)),
	}, nil
}

func (s *documentService) LastSummary(ctx context.Context, sessionID uuid.UUID) (string, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.Document == nil {
		return "", domain.ErrNoDocument
	}
	if sess.LastSummary == "" {
		return "", domain.ErrNoSummary
	}
	return sess.LastSummary, nil
}

func (s *documentService) Ask(ctx context.Context, sessionID uuid.UUID, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}
	doc, err := s.currentDocument(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, llm.AskPrompt(doc.Pages, question))
	if err != nil {
		log.Printf("documentService.Ask: %s failed for document %s: %v", s.completer.Name(), doc.ID, err)
		return nil, modelError("ask", err)
	}
	return &Answer{Question: question, Answer: reply}, nil
}

func (s *documentService) currentDocument(ctx context.Context, sessionID uuid.UUID) (*domain.Document, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Document == nil {
		return nil, domain.ErrNoDocument
	}
	return sess.Document, nil
}

func describe(doc *domain.Document) *DocumentInfo {
	// Every extracted document has at least one page.
	first, _ := doc.View(1)
	return &DocumentInfo{
		ID:         doc.ID,
		FileName:   doc.FileName,
		Format:     doc.Format,
		TotalPages: doc.TotalPages(),
		UploadedAt: doc.UploadedAt,
		FirstPage:  first,
	}
}
