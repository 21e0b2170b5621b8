package extract

import (
	"unicode/utf8"

	"focusbot/internal/domain"
)

func extractTXT(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, domain.ErrInvalidTextEncoding
	}
	return []string{string(data)}, nil
}
