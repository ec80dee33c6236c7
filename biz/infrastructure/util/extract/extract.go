package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"edu-hub/biz/infrastructure/consts"

	"github.com/ledongthuc/pdf"
)

// MimeForFilename 按扩展名推断MIME类型，未知类型返回空串
func MimeForFilename(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return consts.MimePDF
	case ".pptx":
		return consts.MimePPTX
	case ".docx":
		return consts.MimeDOCX
	default:
		return ""
	}
}

// Text 按MIME类型提取纯文本，类型不支持直接报错让任务失败
func Text(data []byte, mimeType string) (string, error) {
	switch mimeType {
	case consts.MimePDF:
		return pdfText(data)
	case consts.MimePPTX:
		return pptxText(data)
	case consts.MimeDOCX:
		return docxText(data)
	default:
		return "", consts.ErrUnsupportedFileType
	}
}

// Chunk 按固定长度切片，末段不足一片也单独成片
func Chunk(text string, size int) []string {
	if size <= 0 || text == "" {
		return nil
	}
	chunks := make([]string, 0, len(text)/size+1)
	for i := 0; i < len(text); i += size {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析PDF失败: %w", err)
	}
	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("提取PDF文本失败: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("读取PDF文本失败: %w", err)
	}
	return sb.String(), nil
}

// pptxText 逐页解析幻灯片XML，按页码顺序拼接
func pptxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析PPTX失败: %w", err)
	}

	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	// 按页码数值排序，字典序会把slide10排到slide2前面
	sort.Slice(slides, func(i, j int) bool { return slideNumber(slides[i].Name) < slideNumber(slides[j].Name) })

	var sb strings.Builder
	for _, slide := range slides {
		rc, err := slide.Open()
		if err != nil {
			return "", fmt.Errorf("打开幻灯片失败: %w", err)
		}
		text, err := ooxmlText(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// slideNumber 从ppt/slides/slideN.xml里取出页码N
func slideNumber(name string) int {
	base := strings.TrimSuffix(path.Base(name), ".xml")
	n, err := strconv.Atoi(strings.TrimPrefix(base, "slide"))
	if err != nil {
		return 0
	}
	return n
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析DOCX失败: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("打开正文失败: %w", err)
		}
		defer rc.Close()
		return ooxmlText(rc)
	}
	return "", fmt.Errorf("DOCX缺少正文部件")
}

// ooxmlText 收集OOXML里所有<t>节点的文本，段落间补换行
func ooxmlText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	var inText bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("解析XML失败: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
			if el.Name.Local == "p" {
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}
	return sb.String(), nil
}
