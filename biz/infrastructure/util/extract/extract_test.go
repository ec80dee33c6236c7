package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"edu-hub/biz/infrastructure/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	text := strings.Repeat("a", 2500)
	chunks := Chunk(text, consts.ChunkSize)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 500)
}

func TestChunkExactMultiple(t *testing.T) {
	chunks := Chunk(strings.Repeat("b", 2000), consts.ChunkSize)
	assert.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
}

func TestChunkShort(t *testing.T) {
	chunks := Chunk("hello", consts.ChunkSize)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestChunkEmpty(t *testing.T) {
	assert.Nil(t, Chunk("", consts.ChunkSize))
	assert.Nil(t, Chunk("abc", 0))
}

func TestMimeForFilename(t *testing.T) {
	assert.Equal(t, consts.MimePDF, MimeForFilename("notes.pdf"))
	assert.Equal(t, consts.MimePDF, MimeForFilename("NOTES.PDF"))
	assert.Equal(t, consts.MimePPTX, MimeForFilename("slides.pptx"))
	assert.Equal(t, consts.MimeDOCX, MimeForFilename("report.docx"))
	assert.Equal(t, "", MimeForFilename("archive.zip"))
	assert.Equal(t, "", MimeForFilename("noext"))
}

func TestPptxTextKeepsSlideOrder(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// 乱序写入，正确顺序只能靠页码恢复
	for _, n := range []int{10, 2, 1, 12, 11, 3, 4, 5, 6, 7, 8, 9} {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", n))
		require.NoError(t, err)
		_, err = fmt.Fprintf(w, `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:t>S%02d </a:t></p:sld>`, n)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	text, err := Text(buf.Bytes(), consts.MimePPTX)
	require.NoError(t, err)

	var want strings.Builder
	for n := 1; n <= 12; n++ {
		fmt.Fprintf(&want, "S%02d ", n)
	}
	assert.Equal(t, want.String(), text)
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text([]byte("data"), "image/png")
	assert.ErrorIs(t, err, consts.ErrUnsupportedFileType)
}
