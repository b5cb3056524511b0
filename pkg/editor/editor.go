// Package editor collects multi-line input by opening the user's text editor on a temporary file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// EditorInvocationError is returned when the editor cannot be started or exits with a failure.
type EditorInvocationError struct {
	Command string
	Err     error
}

func (e *EditorInvocationError) Error() string {
	return fmt.Sprintf("editor %q failed: %v", e.Command, e.Err)
}

func (e *EditorInvocationError) Unwrap() error {
	return e.Err
}

// Runner starts a process attached to the terminal and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// Editor opens text in an external editor.
type Editor struct {
	// Command is the editor command line, e.g. "vim" or "code --wait".
	Command string
	// Runner defaults to running the command on the current terminal.
	Runner Runner
}

// New creates an Editor for command.
func New(command string) *Editor {
	return &Editor{Command: command}
}

// Edit writes initial to a temporary file with the given suffix, lets the
// user edit it and returns the saved text.
func (e *Editor) Edit(ctx context.Context, initial, suffix string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", &EditorInvocationError{Command: e.Command, Err: errors.New("no editor configured")}
	}

	f, err := os.CreateTemp("", "invoice-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	run := e.Runner
	if run == nil {
		run = runTerminal
	}
	slog.Debug("Opening editor", "command", e.Command, "file", path)
	if err := run(ctx, args[0], append(args[1:], path)...); err != nil {
		return "", &EditorInvocationError{Command: e.Command, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}

func runTerminal(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// EditValid opens initial in the editor and parses the result. When parsing
// fails the editor is opened exactly once more on the rejected text, with the
// error shown as comment lines at the top. A second failure returns the parse
// error. The accepted text is returned with the parsed value.
func EditValid[T any](ctx context.Context, ed *Editor, initial, suffix string, parse func(string) (T, error)) (T, string, error) {
	var zero T

	text, err := ed.Edit(ctx, initial, suffix)
	if err != nil {
		return zero, "", err
	}
	value, err := parse(text)
	if err == nil {
		return value, text, nil
	}

	slog.Warn("Input rejected, reopening editor", "error", err)
	text, editErr := ed.Edit(ctx, Annotate(text, err), suffix)
	if editErr != nil {
		return zero, "", editErr
	}
	text = StripAnnotation(text)
	value, err = parse(text)
	if err != nil {
		return zero, "", err
	}
	return value, text, nil
}

// Annotate prefixes text with err as "#" comment lines, replacing any
// annotation left from an earlier attempt.
func Annotate(text string, err error) string {
	var sb strings.Builder
	for _, line := range strings.Split(err.Error(), "\n") {
		sb.WriteString(annotationPrefix + line + "\n")
	}
	sb.WriteString(StripAnnotation(text))
	return sb.String()
}

// StripAnnotation removes the leading error comment lines added by Annotate.
func StripAnnotation(text string) string {
	for strings.HasPrefix(text, annotationPrefix) {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	return text
}

const annotationPrefix = "# ERROR: "
