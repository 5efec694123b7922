package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/idilsaglam/taskboard/internal/model"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// ProgressBar renders a Unicode progress bar with percentage.
// A zero total renders an empty bar at 0%.
func ProgressBar(completed, total, width int) string {
	if width < 5 {
		width = 5
	}
	filled, pct := 0, 0
	if total > 0 {
		filled = int(float64(completed) / float64(total) * float64(width))
		pct = int(float64(completed) / float64(total) * 100)
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Header renders the list title with completion counts.
func Header(completed, total int) string {
	return fmt.Sprintf("%s  %s",
		C(Current().Title, "Tasks"),
		C(Current().Accent, fmt.Sprintf("%d of %d completed", completed, total)),
	)
}

// TaskLine renders one task row for flat listings: index, checkbox,
// title. Long titles are truncated.
func TaskLine(i int, t model.Task) string {
	box := Current().BoxUnchecked
	color := Current().Muted
	if t.Completed {
		box, color = Current().BoxChecked, Current().Success
	}
	title := t.Title
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	idx := fmt.Sprintf("%2d.", i+1)
	return fmt.Sprintf("%s %s %s", C(dim, idx), C(color, box), title)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	// compute visible width
	maxw := 0
	for _, ln := range lines {
		w := len(stripANSI(ln))
		if w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		vis := len(stripANSI(s))
		if vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	leftPad := " "
	fmt.Println(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR)
	for _, ln := range lines {
		fmt.Println(t.V + leftPad + pad(ln) + " " + t.V)
	}
	fmt.Println(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR)
}
