package stages

import "errors"

var (
	ErrNotFound      = errors.New("stage not found")
	ErrInvalidInput  = errors.New("invalid stage")
	ErrMinStages     = errors.New("at least two stages are required")
	ErrDuplicateName = errors.New("stage name already exists")
)
