package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
	"github.com/matzehuels/forcegraph/pkg/render/svg"
	"github.com/matzehuels/forcegraph/pkg/render/visjs"
)

// RenderFromLayout generates every requested format from a computed layout.
// Formats are rendered concurrently; the first failure cancels the rest.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(egCtx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := eg.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, parsed, opts)
}

func renderFormat(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderSVG(l, opts), nil
	case FormatPDF:
		return render.ToPDF(renderSVG(l, opts))
	case FormatPNG:
		return render.ToPNG(renderSVG(l, opts), opts.Scale)
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelinkOptions(opts))), nil
	case FormatGraphvizSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelinkOptions(opts)))
	case FormatVisJS:
		return visjs.Marshal(l)
	case FormatHTML:
		title := opts.Title
		if title == "" {
			title = "forcegraph"
		}
		return visjs.RenderHTML(l, title)
	case FormatJSON:
		return graph.MarshalLayout(l)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func renderSVG(l graph.Layout, opts Options) []byte {
	svgOpts := []svg.Option{svg.WithStyle(opts.Style), svg.WithRotation(opts.Rotation)}
	if opts.Detailed {
		svgOpts = append(svgOpts, svg.WithInteraction())
	}
	return svg.Render(l, svgOpts...)
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed}
}
