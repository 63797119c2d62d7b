package convert

import (
	"context"
	"fmt"

	"vid2mp3/domain/video"
)

// Result contains the outcome of a conversion operation
type Result struct {
	OutputPath   string
	OutputSizeMB *float64 // nil when the output size could not be read back
}

// Service coordinates conversion operations
type Service struct {
	converter   video.Converter
	fileChecker video.FileChecker
}

// NewService creates a new Service
func NewService(converter video.Converter, fileChecker video.FileChecker) *Service {
	return &Service{
		converter:   converter,
		fileChecker: fileChecker,
	}
}

// Input represents the input for a conversion operation
type Input struct {
	InputPath  string // local path or URL, already resolved by the caller
	OnProgress video.ProgressFunc
}

// Convert converts the input to MP3 according to the input parameters.
// Local inputs must exist; URLs are handed to the converter verbatim.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if !video.IsURL(input.InputPath) && !s.fileChecker.Exists(input.InputPath) {
		return nil, fmt.Errorf("source video does not exist: %s", input.InputPath)
	}

	req, err := video.NewConversionRequest(input.InputPath)
	if err != nil {
		return nil, err
	}

	if err := s.converter.Convert(ctx, req, input.OnProgress); err != nil {
		return nil, err
	}

	result := &Result{OutputPath: req.OutputPath}

	// The tool can exit 0 before the output is statable; in that race the
	// size is simply omitted from the report.
	if size, ok := s.fileChecker.SizeMB(req.OutputPath); ok {
		result.OutputSizeMB = &size
	}

	return result, nil
}
