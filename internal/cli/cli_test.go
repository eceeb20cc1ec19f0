package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

const testGraph = `{
  "nodes": [
    {"id": "web", "label": "Web", "layer": "client", "year": 2020},
    {"id": "api", "label": "API", "layer": "api", "year": 2021},
    {"id": "db", "label": "Postgres", "layer": "database", "year": 2022}
  ],
  "edges": [
    {"from": "web", "to": "api", "protocol": "HTTPS"},
    {"from": "api", "to": "db", "protocol": "SQL", "year": 2022}
  ]
}`

// run executes the root command with an isolated config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arch.json")
	if err := os.WriteFile(path, []byte(testGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join(dir, appName); got != want {
		t.Errorf("configDir() = %q, want %q", got, want)
	}
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	got, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName); got != want {
		t.Errorf("configDir() = %q, want %q", got, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,dot", []string{"svg", "dot"}},
		{" svg , visjs ,", []string{"svg", "visjs"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"skills.json", "skills"},
		{"dir/skills.yaml", "dir/skills"},
		{"skills.layout.json", "skills"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.in); got != tt.want {
			t.Errorf("outputBase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    map[string]string
	}{
		{
			name:    "single format with output",
			formats: []string{"svg"},
			input:   "g.json",
			output:  "out/picture.svg",
			want:    map[string]string{"svg": "out/picture.svg"},
		},
		{
			name:    "derived from input",
			formats: []string{"svg", "visjs"},
			input:   "g.layout.json",
			want:    map[string]string{"svg": "g.svg", "visjs": "g.visjs.json"},
		},
		{
			name:    "output as base",
			formats: []string{"dot", "json"},
			input:   "g.json",
			output:  "out/base",
			want:    map[string]string{"dot": "out/base.dot", "json": "out/base.layout.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPaths(tt.formats, tt.input, tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("artifactPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("artifactPaths()[%q] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestIsLayoutFile(t *testing.T) {
	if !isLayoutFile("dir/skills.layout.json") {
		t.Error("isLayoutFile(skills.layout.json) = false, want true")
	}
	if isLayoutFile("skills.json") {
		t.Error("isLayoutFile(skills.json) = true, want false")
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeTestGraph(t)

	if _, err := run(t, "layout", input, "--static", "--init", "layers", "--table=false"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	out := strings.TrimSuffix(input, ".json") + ".layout.json"
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(l.Positions) != 3 {
		t.Fatalf("len(Positions) = %d, want 3", len(l.Positions))
	}
	if l.GroupBy != graph.GroupByLayer {
		t.Errorf("GroupBy = %q, want %q", l.GroupBy, graph.GroupByLayer)
	}
	for _, p := range l.Positions {
		if p.X != 400 {
			t.Errorf("%s.X = %g, want 400 (one node per row)", p.ID, p.X)
		}
	}
}

func TestLayoutCommandYear(t *testing.T) {
	input := writeTestGraph(t)
	out := filepath.Join(t.TempDir(), "snap.layout.json")

	if _, err := run(t, "layout", input, "--year", "2021", "--seed", "7", "-o", out, "--table=false"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(l.Nodes) != 2 || l.Year != 2021 || l.Seed != 7 {
		t.Errorf("layout = %d nodes, year %d, seed %d; want 2, 2021, 7", len(l.Nodes), l.Year, l.Seed)
	}
}

func TestLayoutCommandInvalidOptions(t *testing.T) {
	input := writeTestGraph(t)

	_, err := run(t, "layout", input, "--width", "-5")
	if !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("layout --width -5 error = %v, want %s", err, errors.ErrCodeInvalidRegion)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeTestGraph(t)
	base := filepath.Join(t.TempDir(), "out")

	if _, err := run(t, "render", input, "-f", "svg,dot,json", "-o", base); err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{".svg", ".dot", ".layout.json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("missing %s: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}

	// Rendering the written layout must not touch it.
	layoutPath := base + ".layout.json"
	before, _ := os.ReadFile(layoutPath)
	if _, err := run(t, "render", layoutPath, "-f", "json,visjs"); err != nil {
		t.Fatalf("render layout error: %v", err)
	}
	after, _ := os.ReadFile(layoutPath)
	if !bytes.Equal(before, after) {
		t.Error("render overwrote its input layout")
	}
	if _, err := os.Stat(base + ".visjs.json"); err != nil {
		t.Errorf("missing visjs output: %v", err)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeTestGraph(t)

	_, err := run(t, "render", input, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f gif error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestParseCommandConvert(t *testing.T) {
	input := writeTestGraph(t)

	out, err := run(t, "parse", input, "--year", "2021", "--to", "yaml")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	g, err := graph.ReadGraph(strings.NewReader(out), graph.FormatYAML)
	if err != nil {
		t.Fatalf("ReadGraph(yaml) error: %v\n%s", err, out)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("snapshot = %d nodes, %d edges; want 2, 1", len(g.Nodes), len(g.Edges))
	}
}

func TestConfigFileDefaults(t *testing.T) {
	input := writeTestGraph(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[layout]\nseed = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--config", cfg, "layout", input, "--table=false"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := graph.ReadLayoutFile(strings.TrimSuffix(input, ".json") + ".layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if l.Seed != 99 {
		t.Errorf("Seed = %d, want 99 from config", l.Seed)
	}

	// Flags win over the file.
	if _, err := run(t, "--config", cfg, "layout", input, "--seed", "5", "--table=false"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, _ = graph.ReadLayoutFile(strings.TrimSuffix(input, ".json") + ".layout.json")
	if l.Seed != 5 {
		t.Errorf("Seed = %d, want 5 from flag", l.Seed)
	}
}

func TestConfigCommandMissingFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config", "show")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("config show error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program name")
	}
}
