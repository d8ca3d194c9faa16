package plotpage

// Theme selects a report color scheme.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeConfig holds the colors a theme applies to the page and charts.
type ThemeConfig struct {
	PageBackground  string
	PageText        string
	MutedText       string
	CardBackground  string
	CardBorder      string
	ChartBackground string
	ChartText       string
	ChartAxis       string
	ChartGrid       string
	EChartsTheme    string
}

var themeConfigs = map[Theme]ThemeConfig{
	ThemeLight: {
		PageBackground:  "#f6f7f9",
		PageText:        "#1c2024",
		MutedText:       "#6b7280",
		CardBackground:  "#ffffff",
		CardBorder:      "#e5e7eb",
		ChartBackground: "#ffffff",
		ChartText:       "#1c2024",
		ChartAxis:       "#9ca3af",
		ChartGrid:       "#e5e7eb",
		EChartsTheme:    "white",
	},
	ThemeDark: {
		PageBackground:  "#0f1115",
		PageText:        "#e5e7eb",
		MutedText:       "#9ca3af",
		CardBackground:  "#171a21",
		CardBorder:      "#2a2f3a",
		ChartBackground: "#171a21",
		ChartText:       "#e5e7eb",
		ChartAxis:       "#6b7280",
		ChartGrid:       "#2a2f3a",
		EChartsTheme:    "dark",
	},
}

// GetThemeConfig returns the configuration for a theme, defaulting to light
// for unknown names.
func GetThemeConfig(theme Theme) ThemeConfig {
	cfg, ok := themeConfigs[theme]
	if !ok {
		return themeConfigs[ThemeLight]
	}

	return cfg
}
