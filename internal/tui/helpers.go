package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/anarchistempire/empire/pkg/domain"
)

// formatPrice renders a price the way the storefront shows it, e.g. "199₽".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "₽"
}

// formatDate renders a service timestamp in local time.
func formatDate(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("02.01.2006 15:04")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// mask hides a secret behind bullets of the same length.
func mask(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// centerLine pads s on the left so it sits in the middle of width.
func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
