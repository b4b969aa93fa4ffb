package dsl

import (
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

func testItem() *core.Item {
	it := core.NewItem("p1")
	it.Name = "键盘"
	it.Score = 0.8
	it.Source = core.SourceCollab
	it.PutLabel("recall_source", utils.Label{Value: "collab", Source: "recall"})
	it.PutLabel("category", utils.Label{Value: "electronics", Source: "recall"})
	return it
}

func TestEval_Evaluate(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u1", Scene: "feed", TopN: 10}
	e := NewEval(testItem(), rctx)

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty expression is true", "", true},
		{"item score comparison", "item.score > 0.5", true},
		{"item score negative", "item.score > 0.9", false},
		{"item source", `item.source == "COLLAB"`, true},
		{"label top level access", `label.recall_source == "collab"`, true},
		{"label mismatch", `label.category == "books"`, false},
		{"rctx access", `rctx.scene == "feed" && rctx.top_n == 10`, true},
		{"logic combination", `label.category == "electronics" && item.score >= 0.8`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_Evaluate_Errors(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u1"}
	e := NewEval(testItem(), rctx)

	if _, err := e.Evaluate("((("); err == nil {
		t.Error("syntax error should be reported")
	}
	if _, err := e.Evaluate("item.score"); err == nil {
		t.Error("non-boolean result should be rejected")
	}
}
