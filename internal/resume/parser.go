package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned when a file parses but yields no text.
var ErrEmptyDocument = errors.New("document contains no extractable text")

var (
	xmlTags        = regexp.MustCompile(`<[^>]+>`)
	inlineSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns    = regexp.MustCompile(`\n+`)
	nonBreakingSpc = "\u00a0"
)

// ExtractText reads the resume file and returns its plain text. PDF and DOCX
// are supported. Failures are reported per file so the caller can skip the
// resume and continue with the batch.
func ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume %q: %w", path, err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("resume %q: unsupported format (want .pdf or .docx)", path)
	}

	if err != nil {
		return "", fmt.Errorf("parsing resume %q: %w", path, err)
	}

	if text == "" {
		return "", fmt.Errorf("resume %q: %w", path, ErrEmptyDocument)
	}

	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	return normalizeWhitespace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var document []byte
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		document, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}

	if len(document) == 0 {
		return "", errors.New("no document.xml found in docx archive")
	}

	text := string(document)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTags.ReplaceAllString(text, " ")

	return normalizeWhitespace(text), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, nonBreakingSpc, " ")
	s = inlineSpaces.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
