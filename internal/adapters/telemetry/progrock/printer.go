package progrock

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vito/progrock"
)

// Printer is a progrock.Writer that prints a line for every finished vertex
// and every line a vertex logs.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:   out,
		names: make(map[string]string),
	}
}

// SetOutput redirects subsequent lines to w.
func (p *Printer) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// WriteStatus implements progrock.Writer.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.Vertexes {
		p.names[v.Id] = v.Name
		if v.Completed == nil {
			continue
		}
		_, _ = fmt.Fprintln(p.out, vertexLine(v))
	}
	for _, l := range update.Logs {
		name := p.names[l.Vertex]
		for _, line := range strings.Split(string(l.Data), "\n") {
			if line == "" {
				continue
			}
			_, _ = fmt.Fprintf(p.out, "%s: %s\n", name, line)
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (p *Printer) Close() error {
	return nil
}

func vertexLine(v *progrock.Vertex) string {
	switch {
	case v.Error != nil && *v.Error == context.Canceled.Error():
		return "cancelled " + v.Name
	case v.Error != nil:
		return fmt.Sprintf("failed    %s: %s", v.Name, *v.Error)
	case v.Cached:
		return "cached    " + v.Name
	default:
		return "done      " + v.Name
	}
}
