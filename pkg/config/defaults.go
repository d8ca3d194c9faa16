package config

// Report defaults.
const (
	DefaultReportTopN  = 5
	DefaultReportTheme = "light"
)

// Resample defaults.
const (
	DefaultResampleBinHours = 24
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
