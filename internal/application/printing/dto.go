package printing

// ExportResult is a rendered document ready to be streamed to the
// client
type ExportResult struct {
	Filename    string
	ContentType string
	PDFData     []byte
	PageCount   int
}
