package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/sheetreport/pkg/sheetreport/report"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

// Render writes the same body the HTTP endpoint returns.
func (r *JSONRenderer) Render(w io.Writer, rep *report.Report, opts RenderOptions) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rep)
}
