package config

// Layout constants.
const (
	// DefaultFocusColumn is the initially focused list column.
	DefaultFocusColumn = 0

	// MinColumnWidth is the minimum width for a list column.
	MinColumnWidth = 14

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// TargetTitleWidth is the preferred width for card titles.
	TargetTitleWidth = 30

	// MinTitleWidth is the minimum width for card titles.
	MinTitleWidth = 10
)

// Display limits.
const (
	// MaxVisibleCards limits cards shown per column before scrolling.
	MaxVisibleCards = 15

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)
