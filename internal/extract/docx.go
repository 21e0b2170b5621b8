package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"focusbot/internal/domain"
)

const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart = "word/document.xml"
)

// extractDOCX returns the body paragraphs of a Word document joined by
// newlines as a single page.
func extractDOCX(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening docx archive: %v", domain.ErrUnreadableDocument, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: %s missing from archive", domain.ErrUnreadableDocument, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrUnreadableDocument, documentPart, err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := bodyParagraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrUnreadableDocument, documentPart, err)
	}
	return []string{strings.Join(paragraphs, "\n")}, nil
}

// bodyParagraphs walks document.xml and collects the text of every paragraph
// that is a direct child of w:body. Paragraphs nested in tables or text boxes
// are skipped.
func bodyParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []xml.Name
		paragraphs []string
		current    strings.Builder
		inBodyPara bool
		paraDepth  int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == wordNS {
				switch t.Name.Local {
				case "p":
					paraDepth++
					if len(stack) > 0 && isWord(stack[len(stack)-1], "body") {
						inBodyPara = true
						current.Reset()
					}
				case "tab":
					// w:tab also appears under w:pPr/w:tabs as a tab stop.
					if inBodyPara && paraDepth == 1 && inRun(stack) {
						current.WriteByte('\t')
					}
				case "br":
					if inBodyPara && paraDepth == 1 && inRun(stack) && isLineBreak(t) {
						current.WriteByte('\n')
					}
				case "cr":
					if inBodyPara && paraDepth == 1 && inRun(stack) {
						current.WriteByte('\n')
					}
				}
			}
			stack = append(stack, t.Name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Space == wordNS && t.Name.Local == "p" {
				paraDepth--
				if inBodyPara && paraDepth == 0 {
					paragraphs = append(paragraphs, current.String())
					inBodyPara = false
				}
			}
		case xml.CharData:
			if inBodyPara && paraDepth == 1 && len(stack) > 0 && isWord(stack[len(stack)-1], "t") {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

func isWord(n xml.Name, local string) bool {
	return n.Space == wordNS && n.Local == local
}

func inRun(stack []xml.Name) bool {
	return len(stack) > 0 && isWord(stack[len(stack)-1], "r")
}

// isLineBreak reports whether a w:br is a text wrapping break. Page and
// column breaks add no text.
func isLineBreak(el xml.StartElement) bool {
	for _, a := range el.Attr {
		if isWord(a.Name, "type") {
			return a.Value == "" || a.Value == "textWrapping"
		}
	}
	return true
}
