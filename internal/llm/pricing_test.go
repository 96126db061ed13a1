package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	got := c.Cost(1_000_000, 100_000)
	if math.Abs(got-0.55) > 1e-9 {
		t.Fatalf("cost = %v, want 0.55", got)
	}
	if LookupCost("mock") != nil {
		t.Fatal("mock should have no pricing")
	}
}

func TestLookupCost_TierModelsPriced(t *testing.T) {
	for _, models := range []map[string]string{geminiModels, openaiModels, anthropicModels, openrouterModels} {
		for _, tier := range []string{TierFast, TierPro} {
			if LookupCost(models[tier]) == nil {
				t.Errorf("no pricing for %s tier model %q", tier, models[tier])
			}
		}
	}
}
