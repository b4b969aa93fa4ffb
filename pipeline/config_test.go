package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/shoprec/core"
)

type noopNode struct {
	name string
}

func (n *noopNode) Name() string { return n.name }
func (n *noopNode) Kind() Kind   { return KindRecall }
func (n *noopNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	content := `
pipeline:
  name: shop_feed
  nodes:
    - type: recall.warm
      config:
        top_k: 3
    - type: rerank.topn
      config:
        n: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "shop_feed" {
		t.Errorf("Name = %q, want shop_feed", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Type != "recall.warm" {
		t.Errorf("nodes[0].Type = %q, want recall.warm", cfg.Pipeline.Nodes[0].Type)
	}
	if got := cfg.Pipeline.Nodes[1].Config["n"]; got != 10 {
		t.Errorf("nodes[1].Config[n] = %v, want 10", got)
	}
}

func TestConfig_BuildPipeline(t *testing.T) {
	factory := NewNodeFactory()
	factory.Register("noop", func(cfg map[string]interface{}) (Node, error) {
		return &noopNode{name: "noop"}, nil
	})

	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "noop"}}

	pipe, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(pipe.Nodes) != 1 || pipe.Nodes[0].Name() != "noop" {
		t.Errorf("unexpected pipeline nodes: %v", pipe.Nodes)
	}

	cfg.Pipeline.Nodes = []NodeConfig{{Type: "unknown"}}
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Error("unknown node type should fail the build")
	}
}

func TestPipeline_RunSequential(t *testing.T) {
	calls := []string{}
	mk := func(name string) Node {
		return &recordNode{name: name, calls: &calls}
	}
	p := &Pipeline{Nodes: []Node{mk("a"), mk("b"), mk("c")}}

	if _, err := p.Run(context.Background(), &core.RecommendContext{UserID: "u1"}, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Errorf("nodes ran in order %v, want [a b c]", calls)
	}
}

type recordNode struct {
	name  string
	calls *[]string
}

func (n *recordNode) Name() string { return n.name }
func (n *recordNode) Kind() Kind   { return KindRecall }
func (n *recordNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	*n.calls = append(*n.calls, n.name)
	return items, nil
}
