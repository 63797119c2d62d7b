package convert

import (
	"context"
	"errors"
	"testing"

	"vid2mp3/domain/video"
)

// mockConverter records conversion calls
type mockConverter struct {
	err      error
	gotReq   *video.ConversionRequest
	progress []string
}

func (m *mockConverter) Convert(ctx context.Context, req *video.ConversionRequest, onProgress video.ProgressFunc) error {
	m.gotReq = req
	if onProgress != nil {
		for _, token := range m.progress {
			onProgress(token)
		}
	}
	return m.err
}

// mockFileChecker answers existence and size probes from maps
type mockFileChecker struct {
	existing map[string]bool
	sizes    map[string]float64
}

func (m *mockFileChecker) Exists(path string) bool { return m.existing[path] }

func (m *mockFileChecker) SizeMB(path string) (float64, bool) {
	size, ok := m.sizes[path]
	return size, ok
}

func TestConvertSuccessWithSize(t *testing.T) {
	converter := &mockConverter{}
	checker := &mockFileChecker{
		existing: map[string]bool{"/videos/clip.mp4": true},
		sizes:    map[string]float64{"/videos/clip.mp3": 1.2},
	}
	service := NewService(converter, checker)

	result, err := service.Convert(context.Background(), Input{InputPath: "/videos/clip.mp4"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if result.OutputPath != "/videos/clip.mp3" {
		t.Errorf("OutputPath = %q, want /videos/clip.mp3", result.OutputPath)
	}
	if result.OutputSizeMB == nil || *result.OutputSizeMB != 1.2 {
		t.Errorf("OutputSizeMB = %v, want 1.2", result.OutputSizeMB)
	}
	if converter.gotReq == nil || converter.gotReq.InputPath != "/videos/clip.mp4" {
		t.Errorf("converter called with %+v", converter.gotReq)
	}
}

func TestConvertSizeUnavailable(t *testing.T) {
	// Tool exits 0 but the output is not statable yet: size omitted.
	converter := &mockConverter{}
	checker := &mockFileChecker{existing: map[string]bool{"/videos/clip.mp4": true}}
	service := NewService(converter, checker)

	result, err := service.Convert(context.Background(), Input{InputPath: "/videos/clip.mp4"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if result.OutputSizeMB != nil {
		t.Errorf("OutputSizeMB = %v, want nil", *result.OutputSizeMB)
	}
}

func TestConvertMissingLocalInput(t *testing.T) {
	service := NewService(&mockConverter{}, &mockFileChecker{})

	_, err := service.Convert(context.Background(), Input{InputPath: "/videos/missing.mp4"})
	if err == nil {
		t.Fatal("Convert() expected error for missing input")
	}
}

func TestConvertURLSkipsExistenceCheck(t *testing.T) {
	converter := &mockConverter{}
	service := NewService(converter, &mockFileChecker{})

	result, err := service.Convert(context.Background(), Input{InputPath: "https://example.com/a/video.mkv"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if result.OutputPath != "video.mp3" {
		t.Errorf("OutputPath = %q, want video.mp3", result.OutputPath)
	}
}

func TestConvertPropagatesConverterError(t *testing.T) {
	wantErr := &video.ExitError{Code: 1}
	converter := &mockConverter{err: wantErr}
	checker := &mockFileChecker{existing: map[string]bool{"/videos/clip.mp4": true}}
	service := NewService(converter, checker)

	_, err := service.Convert(context.Background(), Input{InputPath: "/videos/clip.mp4"})

	var exitErr *video.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("Convert() error = %v, want %v", err, wantErr)
	}
}

func TestConvertForwardsProgress(t *testing.T) {
	converter := &mockConverter{progress: []string{"00:00:10.00", "00:00:20.00"}}
	checker := &mockFileChecker{existing: map[string]bool{"/videos/clip.mp4": true}}
	service := NewService(converter, checker)

	var got []string
	_, err := service.Convert(context.Background(), Input{
		InputPath:  "/videos/clip.mp4",
		OnProgress: func(token string) { got = append(got, token) },
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d progress tokens, want 2", len(got))
	}
}
