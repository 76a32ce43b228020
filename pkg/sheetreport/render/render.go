package render

import (
	"io"

	"github.com/komsit37/sheetreport/pkg/sheetreport/report"
)

// Renderer prints a finished report.
type Renderer interface {
	Render(w io.Writer, rep *report.Report, opts RenderOptions) error
}

type RenderOptions struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}
