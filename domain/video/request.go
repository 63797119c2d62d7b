package video

import "fmt"

// DefaultAudioBitrate is the bitrate used for extracted MP3 audio.
const DefaultAudioBitrate = "192k"

// ConversionRequest represents a request to convert one video source to MP3
type ConversionRequest struct {
	InputPath  string // local path or URL, used verbatim
	OutputPath string
	Bitrate    string
}

// NewConversionRequest creates a ConversionRequest with the output path
// derived from the input.
func NewConversionRequest(inputPath string) (*ConversionRequest, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}

	return &ConversionRequest{
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath),
		Bitrate:    DefaultAudioBitrate,
	}, nil
}
