package uploads

import "errors"

var (
	ErrNotFound     = errors.New("upload not found")
	ErrInvalidInput = errors.New("invalid upload")
	ErrTooLarge     = errors.New("upload exceeds size limit")
	ErrJobNotFound  = errors.New("job not found")
	ErrNoText       = errors.New("no extracted text for upload")
)
