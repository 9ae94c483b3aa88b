package extract

// File type categories recognized by the extractor, keyed by lowercased
// extension. Anything not listed dispatches through the unknown fallback.

// textExtensions are read permissively as text with the first-line title heuristic.
var textExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

// wordDocumentExtension is parsed into paragraphs with style metadata.
const wordDocumentExtension = ".docx"

// unimplementedExtensions are recognized document formats whose content
// extraction is deferred. The file is reported as present, nothing is read.
var unimplementedExtensions = map[string]struct{}{
	".pdf":  {},
	".xlsx": {},
	".xls":  {},
	".ppt":  {},
	".pptx": {},
}

// binaryExtensions cover images, executables, archives, audio, video, and
// shortcuts. No content read is attempted for these.
var binaryExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".tiff": {},
	".svg":  {},
	".exe":  {},
	".dll":  {},
	".app":  {},
	".bin":  {},
	".zip":  {},
	".gz":   {},
	".tar":  {},
	".rar":  {},
	".7z":   {},
	".mp3":  {},
	".wav":  {},
	".aac":  {},
	".flac": {},
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
	".lnk":  {},
	".url":  {},
}

const (
	noteEmptyTextFile        = "[Empty text file]"
	noteDocxEmpty            = "[DOCX appears empty or has no extractable text/headings]"
	noteDocxHeadingsOnly     = "[DOCX has headings but no other significant body text found for preview]"
	noteDocxUnavailable      = "[DOCX support unavailable: document parser not initialized. Content extraction skipped.]"
	noteNotImplementedFormat = "[Content extraction for %s not yet implemented, but file is present.]"
	noteBinaryFormat         = "[Binary, media, archive, or shortcut file (%s). Content not displayed.]"
	noteAttemptedFormat      = "[Attempted text extraction for unknown type %s]"
	noteUnknownEmptyFormat   = "[Unknown file type (%s), appears empty or unreadable as text]"
	noteUnknownBinaryFormat  = "[Unknown file type (%s), likely binary or not text-readable]"
	noteErrorFormat          = "[ERROR processing file %s: %s - %v]"
)
