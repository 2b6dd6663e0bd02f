package document

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal .docx archive around the given
// word/document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Motivation letter</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t>  paragraph</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := ExtractText("letter.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Motivation letter\nSecond paragraph", text)
}

func TestExtractText_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText("broken.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	_, err := ExtractText("photo.png", []byte{0x89, 0x50, 0x4e, 0x47})
	assert.Error(t, err)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("broken.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}

func TestExcerpt_IsBestEffort(t *testing.T) {
	assert.Empty(t, excerpt("photo.png", []byte("binary")))
	assert.Empty(t, excerpt("broken.pdf", []byte("junk")))
}

func TestExcerpt_Truncates(t *testing.T) {
	long := bytes.Repeat([]byte("<w:p><w:r><w:t>word </w:t></w:r></w:p>"), 600)
	data := buildDocx(t, string(long))
	got := excerpt("big.docx", data)
	assert.LessOrEqual(t, len(got), maxExcerptLen)
	assert.NotEmpty(t, got)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", collapseWhitespace("  a \t b \n\n c  "))
	assert.Equal(t, "", collapseWhitespace(" \n \t "))
}
