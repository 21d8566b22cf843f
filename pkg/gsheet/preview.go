package gsheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// previewSink renders a flush as a static HTML file instead of calling the
// API. Cell text is written literally, with no escaping: preview content
// is trusted, not treated as markup-safe. Structural ops are accepted and
// dropped. Repeated flushes overwrite the same file.
type previewSink struct {
	path  string
	title string
}

func (p *previewSink) commit(_ context.Context, writes []ValueWrite, _ []StructuralOp) error {
	var b strings.Builder
	b.WriteString("<html><head><style>\n")
	b.WriteString("table { border-collapse: collapse; }\n")
	b.WriteString("td, th { border: 1px solid #ccc; padding: 4px 8px; }\n")
	b.WriteString("</style></head><body>\n")
	fmt.Fprintf(&b, "<h1>Sheet Preview: %s</h1>\n", p.title)

	for _, vw := range writes {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<table>\n", vw.Range)
		for _, row := range vw.Values {
			b.WriteString("<tr>")
			for _, cell := range row {
				fmt.Fprintf(&b, "<td>%v</td>", cell)
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</table>\n")
	}

	b.WriteString("</body></html>\n")

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.path, []byte(b.String()), 0644)
}
