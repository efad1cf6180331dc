package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/observability"
	"github.com/matzehuels/keyforge/pkg/preview"
)

// Export converts a solid into one output format.
func Export(ctx context.Context, s kernel.Solid, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSTL:
		return kernel.STL(s, opts.MeshCells)
	case FormatPNG, FormatWebP:
		img, err := preview.Render(ctx, s, opts.PreviewOptions())
		if err != nil {
			return nil, err
		}
		return preview.EncodeBytes(img, format)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

func (r *Runner) export(ctx context.Context, label string, s kernel.Solid, format string, opts Options) ([]byte, error) {
	start := time.Now()
	data, err := Export(ctx, s, format, opts)
	observability.Build().OnExportComplete(ctx, label, format, len(data), time.Since(start), err)
	return data, err
}
