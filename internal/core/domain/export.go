package domain

// ExportFile is a generated document handed back to clients as a base64 payload.
type ExportFile struct {
	Filename      string `json:"filename"`
	MimeType      string `json:"mime_type"`
	ContentBase64 string `json:"content_base64"`
}
