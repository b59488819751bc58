package catalog

import (
	"testing"

	"script-shelf/internal/domain"
)

func sampleSettings() domain.Settings {
	return domain.Settings{
		Categories: []string{domain.AllCategory, "Rig", "FX"},
		AllTags:    []string{"fast", "beta"},
		ScriptSettings: map[string]domain.ScriptEntry{
			"rig.jsx":  {DisplayName: "Auto Rigger", Category: "Rig", Tags: []string{"fast", "beta"}},
			"glow.jsx": {Category: "FX", Tags: []string{"fast"}},
		},
	}
}

func sampleScripts() []domain.Script {
	return []domain.Script{
		{Name: "glow.jsx", Path: "/s/glow.jsx"},
		{Name: "rig.jsx", Path: "/s/rig.jsx"},
		{Name: "plain.jsx", Path: "/s/plain.jsx"},
	}
}

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

// TestFilterAllCategoryReturnsEverything checks the sentinel disables category filtering.
func TestFilterAllCategoryReturnsEverything(t *testing.T) {
	items := Filter(sampleScripts(), sampleSettings(), Query{Category: domain.AllCategory})
	if len(items) != 3 {
		t.Fatalf("items = %v, want 3", names(items))
	}
	if items[1].DisplayName != "Auto Rigger" || items[2].DisplayName != "plain.jsx" {
		t.Fatalf("display names = %q %q", items[1].DisplayName, items[2].DisplayName)
	}
}

// TestFilterCategorySearchAndTags checks the combined filters.
func TestFilterCategorySearchAndTags(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"category", Query{Category: "FX"}, []string{"glow.jsx"}},
		{"search display name", Query{Search: "RIGGER"}, []string{"rig.jsx"}},
		{"search falls back to file name", Query{Search: "plain"}, []string{"plain.jsx"}},
		{"single tag", Query{Tags: []string{"fast"}}, []string{"glow.jsx", "rig.jsx"}},
		{"tags are AND", Query{Tags: []string{"fast", "beta"}}, []string{"rig.jsx"}},
		{"no match", Query{Category: "Rig", Search: "glow"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Filter(sampleScripts(), sampleSettings(), tc.query))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
