package extract_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dirscribe/dirscribe/internal/extract"
	"github.com/dirscribe/dirscribe/internal/types"
)

const testStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
</w:styles>`

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>Project Overview</w:t></w:r>
    </w:p>
    <w:p>
      <w:pPr><w:pStyle w:val="Normal"/></w:pPr>
      <w:r><w:t>First </w:t></w:r>
      <w:r><w:t>paragraph.</w:t></w:r>
    </w:p>
    <w:p/>
  </w:body>
</w:document>`

// writeTestDocx assembles a minimal .docx archive from the provided parts.
func writeTestDocx(testingHandle *testing.T, filePath string, documentXML string, stylesXML string) {
	testingHandle.Helper()

	var archiveBuffer bytes.Buffer
	archiveWriter := zip.NewWriter(&archiveBuffer)

	documentEntry, documentError := archiveWriter.Create("word/document.xml")
	if documentError != nil {
		testingHandle.Fatalf("failed to create document entry: %v", documentError)
	}
	if _, writeError := documentEntry.Write([]byte(documentXML)); writeError != nil {
		testingHandle.Fatalf("failed to write document entry: %v", writeError)
	}

	if stylesXML != "" {
		stylesEntry, stylesError := archiveWriter.Create("word/styles.xml")
		if stylesError != nil {
			testingHandle.Fatalf("failed to create styles entry: %v", stylesError)
		}
		if _, writeError := stylesEntry.Write([]byte(stylesXML)); writeError != nil {
			testingHandle.Fatalf("failed to write styles entry: %v", writeError)
		}
	}

	if closeError := archiveWriter.Close(); closeError != nil {
		testingHandle.Fatalf("failed to close archive: %v", closeError)
	}
	if writeError := os.WriteFile(filePath, archiveBuffer.Bytes(), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestWordDocumentParserResolvesStyleNames verifies paragraphs come back in
// document order with style identifiers resolved through styles.xml.
func TestWordDocumentParserResolvesStyleNames(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "report.docx")
	writeTestDocx(testingHandle, filePath, testDocumentXML, testStylesXML)

	paragraphs, parseError := extract.NewWordDocumentParser().Parse(filePath)
	if parseError != nil {
		testingHandle.Fatalf("Parse failed: %v", parseError)
	}

	expectedParagraphs := []extract.Paragraph{
		{StyleName: "heading 1", Text: "Project Overview"},
		{StyleName: "Normal", Text: "First paragraph."},
		{StyleName: "", Text: ""},
	}
	if !reflect.DeepEqual(paragraphs, expectedParagraphs) {
		testingHandle.Fatalf("unexpected paragraphs: got %+v want %+v", paragraphs, expectedParagraphs)
	}
}

// TestWordDocumentParserWithoutStylesPart verifies style identifiers are
// used verbatim when the archive has no styles part.
func TestWordDocumentParserWithoutStylesPart(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "bare.docx")
	writeTestDocx(testingHandle, filePath, testDocumentXML, "")

	paragraphs, parseError := extract.NewWordDocumentParser().Parse(filePath)
	if parseError != nil {
		testingHandle.Fatalf("Parse failed: %v", parseError)
	}
	if len(paragraphs) != 3 {
		testingHandle.Fatalf("expected 3 paragraphs, got %d", len(paragraphs))
	}
	if paragraphs[0].StyleName != "Heading1" {
		testingHandle.Fatalf("expected raw style identifier, got %q", paragraphs[0].StyleName)
	}
}

// TestWordDocumentParserNotAnArchive verifies a non-zip file fails with an
// error instead of panicking.
func TestWordDocumentParserNotAnArchive(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "fake.docx")
	writeTestFile(testingHandle, filePath, "just text")

	if _, parseError := extract.NewWordDocumentParser().Parse(filePath); parseError == nil {
		testingHandle.Fatalf("expected parse error for non-archive file")
	}
}

// TestExtractRealDocxEndToEnd verifies extraction against an assembled
// archive: heading title, joined paragraph preview.
func TestExtractRealDocxEndToEnd(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "thesis.docx")
	writeTestDocx(testingHandle, filePath, testDocumentXML, testStylesXML)

	result := extract.NewExtractor(types.DefaultPreviewLimits(), extract.NewWordDocumentParser()).Extract(filePath)

	if result.Title != "Project Overview" {
		testingHandle.Fatalf("unexpected title: %q", result.Title)
	}
	if result.Preview != "Project Overview\nFirst paragraph.\n" {
		testingHandle.Fatalf("unexpected preview: %q", result.Preview)
	}
	if result.Notes != "" {
		testingHandle.Fatalf("unexpected notes: %q", result.Notes)
	}
}
