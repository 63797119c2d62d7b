package cmd

import "fmt"

// ProgressRenderer rewrites a single progress line in place, holding the
// last rendered token so repeated updates are idempotent.
type ProgressRenderer struct {
	out  OutputWriter
	last string
}

// NewProgressRenderer creates a renderer writing to out
func NewProgressRenderer(out OutputWriter) *ProgressRenderer {
	return &ProgressRenderer{out: out}
}

// Render overwrites the current progress line with token.
func (r *ProgressRenderer) Render(token string) {
	if token == "" || token == r.last {
		return
	}
	r.last = token
	fmt.Fprintf(r.out, "\rProgress: %s", token)
}

// Finish terminates the progress line with a newline, if one was rendered.
func (r *ProgressRenderer) Finish() {
	if r.last != "" {
		fmt.Fprintln(r.out)
	}
}
