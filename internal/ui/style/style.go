// Package style provides shared styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Wisteria = lipgloss.Color("#8E7CC3")
	Slate    = lipgloss.Color("#667085")
	Green    = lipgloss.Color("#22A06B")
	Red      = lipgloss.Color("#D93025")
	Yellow   = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)
