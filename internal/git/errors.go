package git

import "errors"

// Repository lookup errors
var (
	ErrNotRepository = errors.New("path is not inside a git repository")
	ErrPathNotSet    = errors.New("path is not set")
)
