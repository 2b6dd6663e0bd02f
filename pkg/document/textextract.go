package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

const maxExcerptLen = 2000

// excerpt pulls a short plain-text preview out of pdf/docx uploads for
// the document metadata. Extraction is best-effort: images, archives and
// broken files just get an empty excerpt.
func excerpt(filename string, data []byte) string {
	text, err := ExtractText(filename, data)
	if err != nil {
		return ""
	}
	if len(text) > maxExcerptLen {
		text = text[:maxExcerptLen]
	}
	return text
}

// ExtractText extracts plain text from supported upload formats
// (.pdf and .docx).
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	default:
		return "", errors.New("no text extractor for this format")
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return collapseWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := reXMLTags.ReplaceAllString(xml, " ")
	return collapseWhitespace(txt), nil
}

var (
	reXMLTags    = regexp.MustCompile(`<[^>]+>`)
	reFlatSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines   = regexp.MustCompile(`[ \t]*\n[\s]*`)
)

func collapseWhitespace(s string) string {
	s = reFlatSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
