package config

import "script-shelf/internal/domain"

// ThemeOption pairs a theme with its icon and display title.
type ThemeOption struct {
	Theme domain.Theme `json:"theme"`
	Icon  string       `json:"icon"`
	Title string       `json:"title"`
}

var themeCatalog = []ThemeOption{
	{Theme: domain.ThemeDark, Icon: "🌙", Title: "暗色主题"},
	{Theme: domain.ThemeNeumorphism, Icon: "🎨", Title: "轻拟物主题"},
	{Theme: domain.ThemeCute, Icon: "🎀", Title: "可爱风主题"},
	{Theme: domain.ThemeHanddrawn, Icon: "🎭", Title: "手绘风主题"},
	{Theme: domain.ThemeGlassmorphismDark, Icon: "🔮", Title: "深色毛玻璃主题"},
}

// Themes returns the built-in themes in display order.
func Themes() []ThemeOption {
	out := make([]ThemeOption, len(themeCatalog))
	copy(out, themeCatalog)
	return out
}

// IsKnownTheme reports whether theme is one of the built-in themes.
func IsKnownTheme(theme domain.Theme) bool {
	return themeIndex(theme) >= 0
}

// ThemeTitle returns the display title, or the raw id for unknown themes.
func ThemeTitle(theme domain.Theme) string {
	if i := themeIndex(theme); i >= 0 {
		return themeCatalog[i].Title
	}
	return string(theme)
}

// NextTheme cycles forward through the catalog, wrapping at the end.
func NextTheme(theme domain.Theme) domain.Theme {
	return shiftTheme(theme, 1)
}

// PreviousTheme cycles backward through the catalog, wrapping at the start.
func PreviousTheme(theme domain.Theme) domain.Theme {
	return shiftTheme(theme, -1)
}

func shiftTheme(theme domain.Theme, step int) domain.Theme {
	i := themeIndex(theme)
	if i < 0 {
		i = 0
	}
	n := len(themeCatalog)
	return themeCatalog[((i+step)%n+n)%n].Theme
}

func themeIndex(theme domain.Theme) int {
	for i, option := range themeCatalog {
		if option.Theme == theme {
			return i
		}
	}
	return -1
}
