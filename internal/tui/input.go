package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// editKey applies a key press to a form field. Typed and pasted runes are
// appended up to maxInputLen; named keys go through editRune.
func editKey(text string, msg tea.KeyMsg) string {
	if msg.Type != tea.KeyRunes {
		return editRune(text, msg.String())
	}
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	runes := msg.Runes
	if len(runes) > room {
		runes = runes[:room]
	}
	return text + string(runes)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formField is one labelled input of a form.
type formField struct {
	label       string
	placeholder string
	value       string
	secret      bool
	multiline   bool
}

// renderForm renders fields one per line with a cursor on the focused one.
// Multi-line values are indented under their label.
func renderForm(fields []formField, focus int) string {
	var b strings.Builder
	for i, f := range fields {
		cursor := " "
		label := metaStyle.Render(f.label)
		if i == focus {
			cursor = inputPromptStyle.Render(">")
			label = selectedStyle.Render(f.label)
		}

		value := f.value
		if f.secret {
			value = mask(value)
		}
		switch {
		case value == "" && i != focus:
			value = inputPlaceholderStyle.Render(f.placeholder)
		case i == focus:
			value = normalStyle.Render(value) + accentStyle.Render("█")
		default:
			value = normalStyle.Render(value)
		}

		if f.multiline {
			fmt.Fprintf(&b, "%s %s:\n", cursor, label)
			for _, line := range strings.Split(value, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s\n", cursor, label, value)
	}
	return b.String()
}
