// Package render writes prepared invoices and timesheets as aligned text or PDF documents.
package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/hamon-in/invoice/pkg/document"
	"github.com/hamon-in/invoice/pkg/pathutil"
)

// Renderer lays out prepared documents for one output medium.
type Renderer interface {
	// Format is the name used on the command line ("text", "pdf").
	Format() string
	// Extension is the file extension of generated files, without the dot.
	Extension() string
	// Binary reports whether the output is unsuitable for a terminal.
	Binary() bool
	RenderInvoice(w io.Writer, inv *document.Invoice) error
	RenderTimesheet(w io.Writer, ts *document.Timesheet) error
}

var renderers = map[string]func() Renderer{
	"text": func() Renderer { return NewTextRenderer() },
	"pdf":  func() Renderer { return NewPDFRenderer() },
}

// Formats lists the available renderer names.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the renderer registered under format.
func New(format string) (Renderer, error) {
	ctor, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

// Destination describes where a document went.
type Destination struct {
	Path   string
	Stdout bool
}

func (d Destination) String() string {
	if d.Stdout {
		return "on stdout"
	}
	return d.Path
}

// Options control where Generator writes.
type Options struct {
	// Stdout keeps output off the filesystem. Text goes to the console,
	// binary formats are rendered in memory only.
	Stdout bool
	// Overwrite replaces an existing file instead of picking a new name.
	Overwrite bool
}

// Generator renders documents and delivers them to the console or the output directory.
type Generator struct {
	Resolver *pathutil.PathResolver
	Stdout   io.Writer
}

// NewGenerator creates a Generator writing files below resolver's output directory.
func NewGenerator(resolver *pathutil.PathResolver) *Generator {
	return &Generator{Resolver: resolver, Stdout: os.Stdout}
}

// Invoice renders inv with r.
func (g *Generator) Invoice(r Renderer, inv *document.Invoice, opts Options) (Destination, error) {
	return g.deliver(r, inv.FileName(r.Extension()), opts, func(w io.Writer) error {
		return r.RenderInvoice(w, inv)
	})
}

// Timesheet renders ts with r.
func (g *Generator) Timesheet(r Renderer, ts *document.Timesheet, opts Options) (Destination, error) {
	return g.deliver(r, ts.FileName(r.Extension()), opts, func(w io.Writer) error {
		return r.RenderTimesheet(w, ts)
	})
}

// deliver renders into memory first so a failed render never leaves a partial file.
func (g *Generator) deliver(r Renderer, name string, opts Options, render func(io.Writer) error) (Destination, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return Destination{}, err
	}

	if opts.Stdout {
		if r.Binary() {
			slog.Info("Rendered preview in memory", "format", r.Format(), "name", name, "bytes", buf.Len())
		} else {
			fmt.Fprintf(g.Stdout, "\n%s\n", buf.String())
		}
		return Destination{Stdout: true}, nil
	}

	path, err := g.Resolver.UniquePath(name, opts.Overwrite)
	if err != nil {
		return Destination{}, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return Destination{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Debug("Wrote document", "path", path, "bytes", buf.Len())
	return Destination{Path: path}, nil
}
