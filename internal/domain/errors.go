package domain

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnreadableDocument   = errors.New("document could not be read")
	ErrInvalidTextEncoding  = errors.New("text file is not valid UTF-8")
	ErrNoDocument           = errors.New("no document has been uploaded")
	ErrPageOutOfRange       = errors.New("page index out of range")
	ErrNoSummary            = errors.New("no summary has been generated")
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrEmptyQuestion        = errors.New("question cannot be empty")
	ErrModelUnavailable     = errors.New("language model request failed")
	ErrInvalidVideoURL      = errors.New("invalid YouTube URL format")
	ErrInvalidCurrency      = errors.New("invalid currency code")
	ErrSameCurrency         = errors.New("source and target currency are the same")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrCurrencyNotSupported = errors.New("currency not supported")
	ErrRateUnavailable      = errors.New("exchange rate lookup failed")
	ErrUnsupportedExport    = errors.New("unsupported export format")
)
