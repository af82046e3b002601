package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ats-backend/internal/extract"
	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
)

const (
	// MaxBytes caps a single candidate file.
	MaxBytes = 10 << 20
	// URLPrefix is where recruiters download stored files.
	URLPrefix = "/api/v1/uploads/"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".txt":  {},
}

// JobLookup resolves the job a file is uploaded for.
type JobLookup interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// Service stores candidate files and their extracted text.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	Jobs  JobLookup
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload stores r for jobID and records it. Text extraction is best effort: a
// file that cannot be read as text is still stored.
func (s *Service) Upload(ctx context.Context, jobID, fileName string, r io.Reader) (Upload, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Upload{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return Upload{}, fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, ext)
	}
	if _, err := s.Jobs.Get(ctx, jobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Upload{}, ErrJobNotFound
		}
		return Upload{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxBytes {
		return Upload{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Upload{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	key, size, mimeType, err := s.Store.Save(ctx, "job:"+jobID, fileName, bytes.NewReader(data))
	if err != nil {
		return Upload{}, fmt.Errorf("store upload: %w", err)
	}

	up := Upload{
		ID:         uuid.NewString(),
		JobID:      jobID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: key,
		CreatedAt:  s.now(),
	}
	s.attachText(ctx, &up, data)

	if err := s.Repo.Insert(ctx, up); err != nil {
		return Upload{}, err
	}
	metrics.IncUploadStored()
	telemetry.Info("upload stored", map[string]any{
		"upload_id":  up.ID,
		"job_id":     jobID,
		"size_bytes": size,
		"mime_type":  mimeType,
		"text_chars": up.TextChars,
	})
	return up, nil
}

func (s *Service) attachText(ctx context.Context, up *Upload, data []byte) {
	text, err := extract.FromBytes(ctx, data, up.MimeType, up.FileName)
	if err != nil {
		telemetry.Warn("upload text extraction skipped", map[string]any{"upload_id": up.ID, "err": err})
		return
	}
	key, err := extract.Persist(ctx, s.Store, up.StorageKey, text)
	if err != nil {
		telemetry.Warn("upload text not persisted", map[string]any{"upload_id": up.ID, "err": err})
		return
	}
	up.TextKey = key
	up.TextChars = utf8.RuneCountInString(text)
}

// Get returns the upload record.
func (s *Service) Get(ctx context.Context, id string) (Upload, error) {
	return s.Repo.Get(ctx, id)
}

// Open returns the record and a reader over the stored file. The caller closes it.
func (s *Service) Open(ctx context.Context, id string) (Upload, io.ReadCloser, error) {
	up, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Upload{}, nil, err
	}
	rc, err := s.Store.Open(ctx, up.StorageKey)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("open upload %s: %w", id, err)
	}
	return up, rc, nil
}

// Text returns the extracted text of an upload.
func (s *Service) Text(ctx context.Context, id string) (string, error) {
	up, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !up.HasText() {
		return "", ErrNoText
	}
	rc, err := s.Store.Open(ctx, up.TextKey)
	if err != nil {
		return "", fmt.Errorf("open upload text %s: %w", id, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read upload text %s: %w", id, err)
	}
	return string(raw), nil
}

// ResolveURL maps an answer naming an upload of jobID to its download URL.
func (s *Service) ResolveURL(ctx context.Context, jobID, ref string) (string, bool) {
	id := strings.TrimPrefix(strings.TrimSpace(ref), URLPrefix)
	if id == "" {
		return "", false
	}
	up, err := s.Repo.Get(ctx, id)
	if err != nil || up.JobID != jobID {
		return "", false
	}
	return URLPrefix + up.ID, true
}

// DeleteByJob drops the upload records of a deleted job.
func (s *Service) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	return s.Repo.DeleteByJob(ctx, jobID)
}
