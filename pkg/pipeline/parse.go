package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Parse reads the input graph named by opts.Input, or decodes opts.Data
// when it is set. opts.InputFormat overrides format detection by extension
// and is required for inline data.
func Parse(opts Options) (graph.Graph, error) {
	if len(opts.Data) > 0 {
		if opts.InputFormat == "" {
			return graph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "input_format is required for inline data")
		}
		return graph.ReadGraph(bytes.NewReader(opts.Data), opts.InputFormat)
	}
	if opts.Input == "" {
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidInput, "input or data is required")
	}
	if opts.InputFormat != "" {
		data, err := readInput(opts.Input)
		if err != nil {
			return graph.Graph{}, err
		}
		return graph.ReadGraph(bytes.NewReader(data), opts.InputFormat)
	}
	return graph.ReadGraphFile(opts.Input)
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
