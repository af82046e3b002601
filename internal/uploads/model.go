package uploads

import "time"

// Upload is a candidate file stored for a job's application form.
type Upload struct {
	ID         string    `json:"id"`
	JobID      string    `json:"jobId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"storageKey"`
	TextKey    string    `json:"textKey,omitempty"`
	TextChars  int       `json:"textChars"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasText reports whether extracted text was stored for the upload.
func (u Upload) HasText() bool {
	return u.TextKey != ""
}
