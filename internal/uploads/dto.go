package uploads

import "time"

type uploadResponse struct {
	UploadID   string    `json:"uploadId"`
	JobID      string    `json:"jobId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	TextChars  int       `json:"textChars"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type textResponse struct {
	UploadID string `json:"uploadId"`
	Text     string `json:"text"`
	Chars    int    `json:"chars"`
}

func toResponse(u Upload) uploadResponse {
	return uploadResponse{
		UploadID:   u.ID,
		JobID:      u.JobID,
		FileName:   u.FileName,
		MimeType:   u.MimeType,
		SizeBytes:  u.SizeBytes,
		TextChars:  u.TextChars,
		URL:        URLPrefix + u.ID,
		UploadedAt: u.CreatedAt,
	}
}
