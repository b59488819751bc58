package config

import (
	"testing"

	"script-shelf/internal/domain"
)

// TestThemeCycling verifies next/previous wrap around the catalog.
func TestThemeCycling(t *testing.T) {
	if got := NextTheme(domain.ThemeGlassmorphismDark); got != domain.ThemeDark {
		t.Fatalf("next after last = %q, want dark", got)
	}
	if got := PreviousTheme(domain.ThemeDark); got != domain.ThemeGlassmorphismDark {
		t.Fatalf("previous before first = %q", got)
	}
	if got := NextTheme("unknown"); got != domain.ThemeNeumorphism {
		t.Fatalf("next from unknown = %q", got)
	}
	if ThemeTitle(domain.ThemeCute) != "可爱风主题" {
		t.Fatalf("title = %q", ThemeTitle(domain.ThemeCute))
	}
}
