//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vid2mp3/cmd"
	"vid2mp3/domain/video"
	"vid2mp3/infrastructure/config"

	"github.com/cucumber/godog"
)

// scriptPrompter replays canned answers and records the menu it was shown
type scriptPrompter struct {
	confirms []bool
	inputs   []string
	selects  []int

	menuOptions []string
}

func (p *scriptPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(p.confirms) == 0 {
		return defaultValue, nil
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptPrompter) Input(message string, defaultValue string) (string, error) {
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("no scripted input for %q", message)
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptPrompter) Select(message string, options []string) (int, error) {
	p.menuOptions = options
	if len(p.selects) == 0 {
		return 0, fmt.Errorf("no scripted selection for %q", message)
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	return answer, nil
}

// fakeScanner lists the scenario's files, applying the real extension filter
type fakeScanner struct {
	dir   string
	files []video.VideoFile
}

func (s *fakeScanner) Scan(dir string) ([]video.VideoFile, error) {
	if dir != s.dir {
		return nil, nil
	}
	var supported []video.VideoFile
	for _, f := range s.files {
		if video.IsSupportedExtension(f.Extension) {
			supported = append(supported, f)
		}
	}
	return supported, nil
}

type fakeChecker struct {
	existing map[string]bool
	sizes    map[string]float64
}

func (c *fakeChecker) Exists(path string) bool { return c.existing[path] }

func (c *fakeChecker) SizeMB(path string) (float64, bool) {
	size, ok := c.sizes[path]
	return size, ok
}

// fakeConverter reports a scripted outcome and records the output size the
// checker should answer with afterwards
type fakeConverter struct {
	err      error
	sizeMB   *float64
	checker  *fakeChecker
	gotInput string
}

func (c *fakeConverter) Convert(ctx context.Context, req *video.ConversionRequest, onProgress video.ProgressFunc) error {
	c.gotInput = req.InputPath
	if c.err != nil {
		return c.err
	}
	if c.sizeMB != nil {
		c.checker.sizes[req.OutputPath] = *c.sizeMB
	}
	return nil
}

// convertContext holds test state for conversion scenarios
type convertContext struct {
	workDir   string
	prompter  *scriptPrompter
	scanner   *fakeScanner
	checker   *fakeChecker
	converter *fakeConverter
	out       *bytes.Buffer
	runErr    error
}

// sharedConvertContext is reset before each scenario via Before hook
var sharedConvertContext *convertContext

func InitializeConvertScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		checker := &fakeChecker{
			existing: make(map[string]bool),
			sizes:    make(map[string]float64),
		}
		sharedConvertContext = &convertContext{
			prompter:  &scriptPrompter{},
			scanner:   &fakeScanner{},
			checker:   checker,
			converter: &fakeConverter{checker: checker},
			out:       &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		sharedConvertContext = nil
		return c, nil
	})

	ctx.Step(`^the working directory is "([^"]*)"$`, theWorkingDirectoryIs)
	ctx.Step(`^the directory contains "([^"]*)" of size (\d+(?:\.\d+)?) MB$`, theDirectoryContains)
	ctx.Step(`^the directory contains an unsupported file "([^"]*)"$`, theDirectoryContainsUnsupported)
	ctx.Step(`^ffmpeg will succeed and produce an output of (\d+(?:\.\d+)?) MB$`, ffmpegWillSucceedWithSize)
	ctx.Step(`^ffmpeg will succeed with no readable output size$`, ffmpegWillSucceedNoSize)
	ctx.Step(`^ffmpeg will fail with exit code (\d+)$`, ffmpegWillFail)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^the user picks menu entry (\d+)$`, theUserPicksMenuEntry)
	ctx.Step(`^the user declines manual entry$`, theUserDeclinesManualEntry)
	ctx.Step(`^the user enters "([^"]*)" manually$`, theUserEntersManually)
	ctx.Step(`^the run ends cleanly$`, theRunEndsCleanly)
	ctx.Step(`^the run fails$`, theRunFails)
	ctx.Step(`^the report shows "([^"]*)"$`, theReportShows)
	ctx.Step(`^the menu offered (\d+) video file$`, theMenuOffered)
}

func theWorkingDirectoryIs(dir string) error {
	tc := sharedConvertContext
	tc.workDir = dir
	tc.scanner.dir = dir
	tc.checker.existing[dir] = true
	return nil
}

func theDirectoryContains(name string, sizeMB float64) error {
	tc := sharedConvertContext
	path := filepath.Join(tc.workDir, name)
	tc.scanner.files = append(tc.scanner.files, video.VideoFile{
		Name:      name,
		Path:      path,
		SizeMB:    sizeMB,
		Extension: strings.ToLower(filepath.Ext(name)),
	})
	tc.checker.existing[path] = true
	return nil
}

func theDirectoryContainsUnsupported(name string) error {
	return theDirectoryContains(name, 0.1)
}

func ffmpegWillSucceedWithSize(sizeMB float64) error {
	sharedConvertContext.converter.sizeMB = &sizeMB
	return nil
}

func ffmpegWillSucceedNoSize() error {
	sharedConvertContext.converter.sizeMB = nil
	return nil
}

func ffmpegWillFail(code int) error {
	sharedConvertContext.converter.err = &video.ExitError{Code: code}
	return nil
}

func ffmpegIsNotInstalled() error {
	sharedConvertContext.converter.err = video.ErrConverterNotFound
	return nil
}

func run(tc *convertContext) {
	tc.runErr = cmd.RunConvertWithDependencies(
		context.Background(),
		tc.prompter,
		tc.scanner,
		tc.checker,
		tc.converter,
		config.Config{DefaultDirectory: tc.workDir},
		cmd.ConvertOptions{},
		tc.out,
	)
}

func theUserPicksMenuEntry(entry int) error {
	tc := sharedConvertContext
	tc.prompter.confirms = []bool{true}
	tc.prompter.selects = []int{entry - 1}
	run(tc)
	return nil
}

func theUserDeclinesManualEntry() error {
	tc := sharedConvertContext
	tc.prompter.confirms = []bool{true, false}
	run(tc)
	return nil
}

func theUserEntersManually(input string) error {
	tc := sharedConvertContext
	tc.prompter.confirms = []bool{true, true}
	tc.prompter.inputs = []string{input}
	run(tc)
	return nil
}

func theRunEndsCleanly() error {
	if err := sharedConvertContext.runErr; err != nil {
		return fmt.Errorf("run returned error: %w", err)
	}
	return nil
}

func theRunFails() error {
	if sharedConvertContext.runErr == nil {
		return fmt.Errorf("run succeeded, expected failure")
	}
	return nil
}

func theReportShows(text string) error {
	got := sharedConvertContext.out.String()
	if !strings.Contains(got, text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, got)
	}
	return nil
}

func theMenuOffered(count int) error {
	options := sharedConvertContext.prompter.menuOptions
	// The trailing option is always manual entry.
	if got := len(options) - 1; got != count {
		return fmt.Errorf("menu offered %d video files, want %d: %v", got, count, options)
	}
	return nil
}
