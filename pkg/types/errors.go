package types

import "errors"

// Domain errors for chunk validation and processing
var (
	// Chunk errors
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrInvalidSpan       = errors.New("span offsets must be non-negative")
	ErrInvalidChunkIndex = errors.New("chunk index must be >= 0")
	ErrUnknownStrategy   = errors.New("unknown chunking strategy")

	// Option errors
	ErrInvalidChunkSize = errors.New("max chunk size must be positive")
	ErrMinExceedsMax    = errors.New("min chunk size must not exceed max chunk size")

	// Coverage errors
	ErrContentLost = errors.New("chunks do not cover the original text")

	// Processing errors
	ErrPathNotFound         = errors.New("path not found")
	ErrProcessingInProgress = errors.New("processing already in progress")
	ErrNotText              = errors.New("file is not valid UTF-8 text")
	ErrFileTooLarge         = errors.New("file exceeds size limit")
)
