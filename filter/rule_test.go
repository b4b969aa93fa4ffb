package filter

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

func warmItem(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	it.Source = core.SourceWarm
	it.PutLabel("recall_source", utils.Label{Value: "warm", Source: "recall"})
	return it
}

func TestRuleFilter_ShouldFilter(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	tests := []struct {
		name string
		expr string
		item *core.Item
		want bool
	}{
		{
			name: "low score warm item matches",
			expr: `label.recall_source == "warm" && item.score < 0.1`,
			item: warmItem("p1", 0.05),
			want: true,
		},
		{
			name: "high score warm item passes",
			expr: `label.recall_source == "warm" && item.score < 0.1`,
			item: warmItem("p2", 0.9),
			want: false,
		},
		{
			name: "source comparison",
			expr: `item.source == "WARM"`,
			item: warmItem("p3", 0.5),
			want: true,
		},
		{
			name: "empty expression keeps everything",
			expr: "",
			item: warmItem("p4", 0.5),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &RuleFilter{Expr: tt.expr}
			got, err := f.ShouldFilter(context.Background(), rctx, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleFilter_BadExpressionKeepsItem(t *testing.T) {
	f := &RuleFilter{Expr: "((("}
	rctx := &core.RecommendContext{UserID: "u1"}

	got, err := f.ShouldFilter(context.Background(), rctx, warmItem("p1", 0.5))
	if err == nil {
		t.Error("broken expression should surface an error")
	}
	if got {
		t.Error("broken expression must not filter the item")
	}
}

func TestFilterNode_SkipsFailingRule(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&RuleFilter{Expr: "((("},
		&RuleFilter{Expr: `item.score < 0.1`},
	}}
	rctx := &core.RecommendContext{UserID: "u1"}

	items := []*core.Item{warmItem("p1", 0.05), warmItem("p2", 0.9)}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 坏规则被跳过，好规则照常生效
	if len(out) != 1 || out[0].ID != "p2" {
		t.Errorf("got %d items, want only p2", len(out))
	}
}
