package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Paragraph is one paragraph of a word-processor document, in document
// order, with the resolved style name when the document declares one.
type Paragraph struct {
	StyleName string
	Text      string
}

// DocumentParser turns a .docx file into its ordered paragraph sequence.
// It is injected into the Extractor so the absent-parser degraded mode is
// a constructor-time capability, not a per-file runtime check.
type DocumentParser interface {
	Parse(filePath string) ([]Paragraph, error)
}

const (
	documentEntryName = "word/document.xml"
	stylesEntryName   = "word/styles.xml"

	errorOpenArchiveFormat  = "opening %s: %w"
	errorMissingEntryFormat = "%s: missing %s"
	errorReadEntryFormat    = "reading %s: %w"
)

// WordDocumentParser reads OOXML word documents directly from the zip
// container, resolving paragraph style identifiers to their style names.
type WordDocumentParser struct{}

// NewWordDocumentParser constructs the default DocumentParser implementation.
func NewWordDocumentParser() *WordDocumentParser {
	return &WordDocumentParser{}
}

var _ DocumentParser = (*WordDocumentParser)(nil)

// Parse extracts the ordered paragraphs of the document together with
// their style names. A document without a styles part still parses; style
// identifiers are then used verbatim as style names.
func (parser *WordDocumentParser) Parse(filePath string) ([]Paragraph, error) {
	archiveReader, openError := zip.OpenReader(filePath)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenArchiveFormat, filePath, openError)
	}
	defer archiveReader.Close()

	styleNames, stylesError := readStyleNames(&archiveReader.Reader)
	if stylesError != nil {
		return nil, stylesError
	}

	documentEntry := findArchiveEntry(&archiveReader.Reader, documentEntryName)
	if documentEntry == nil {
		return nil, fmt.Errorf(errorMissingEntryFormat, filePath, documentEntryName)
	}
	documentReader, entryOpenError := documentEntry.Open()
	if entryOpenError != nil {
		return nil, fmt.Errorf(errorReadEntryFormat, documentEntryName, entryOpenError)
	}
	defer documentReader.Close()

	return decodeParagraphs(documentReader, styleNames)
}

// findArchiveEntry returns the named entry of the archive or nil.
func findArchiveEntry(archive *zip.Reader, entryName string) *zip.File {
	for _, archiveFile := range archive.File {
		if archiveFile.Name == entryName {
			return archiveFile
		}
	}
	return nil
}

// wordStyles models the subset of word/styles.xml needed to resolve
// style identifiers to human-readable style names.
type wordStyles struct {
	Styles []struct {
		StyleID string `xml:"styleId,attr"`
		Name    struct {
			Value string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// readStyleNames builds the styleId -> style name map. A document without
// a styles part yields an empty map, not an error.
func readStyleNames(archive *zip.Reader) (map[string]string, error) {
	stylesEntry := findArchiveEntry(archive, stylesEntryName)
	if stylesEntry == nil {
		return map[string]string{}, nil
	}
	stylesReader, openError := stylesEntry.Open()
	if openError != nil {
		return nil, fmt.Errorf(errorReadEntryFormat, stylesEntryName, openError)
	}
	defer stylesReader.Close()

	var decodedStyles wordStyles
	if decodeError := xml.NewDecoder(stylesReader).Decode(&decodedStyles); decodeError != nil {
		return nil, fmt.Errorf(errorReadEntryFormat, stylesEntryName, decodeError)
	}

	styleNames := make(map[string]string, len(decodedStyles.Styles))
	for _, style := range decodedStyles.Styles {
		if style.StyleID != "" && style.Name.Value != "" {
			styleNames[style.StyleID] = style.Name.Value
		}
	}
	return styleNames, nil
}

// decodeParagraphs streams word/document.xml, collecting each w:p element
// as one Paragraph. Run text inside w:t elements is concatenated; the
// paragraph style is taken from w:pStyle and resolved through styleNames,
// falling back to the raw style identifier.
func decodeParagraphs(documentReader io.Reader, styleNames map[string]string) ([]Paragraph, error) {
	decoder := xml.NewDecoder(documentReader)

	var paragraphs []Paragraph
	var paragraphDepth int
	var currentStyleID string
	var textBuilder strings.Builder
	var insideTextRun bool

	for {
		token, tokenError := decoder.Token()
		if tokenError == io.EOF {
			break
		}
		if tokenError != nil {
			return nil, fmt.Errorf(errorReadEntryFormat, documentEntryName, tokenError)
		}

		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "p":
				paragraphDepth++
				if paragraphDepth == 1 {
					currentStyleID = ""
					textBuilder.Reset()
				}
			case "pStyle":
				if paragraphDepth > 0 && currentStyleID == "" {
					currentStyleID = attributeValue(element, "val")
				}
			case "t":
				if paragraphDepth > 0 {
					insideTextRun = true
				}
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "p":
				if paragraphDepth == 1 {
					styleName := styleNames[currentStyleID]
					if styleName == "" {
						styleName = currentStyleID
					}
					paragraphs = append(paragraphs, Paragraph{
						StyleName: styleName,
						Text:      textBuilder.String(),
					})
				}
				if paragraphDepth > 0 {
					paragraphDepth--
				}
			case "t":
				insideTextRun = false
			}
		case xml.CharData:
			if insideTextRun {
				textBuilder.Write(element)
			}
		}
	}

	return paragraphs, nil
}

// attributeValue returns the value of the named attribute, matching on the
// local name so namespace prefixes do not matter.
func attributeValue(element xml.StartElement, localName string) string {
	for _, attribute := range element.Attr {
		if attribute.Name.Local == localName {
			return attribute.Value
		}
	}
	return ""
}
