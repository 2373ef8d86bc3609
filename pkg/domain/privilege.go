package domain

import "strings"

// Privilege is a paid in-game rank sold by the storefront.
type Privilege struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
	Duration    string   `json:"duration"` // free text: "forever", "30 days"
}

// PrivilegeDraft is the admin form for a new privilege.
// Features is the raw textarea value, one feature per line.
type PrivilegeDraft struct {
	Name        string
	Description string
	Price       float64
	Features    string
	Duration    string
}

// SplitFeatures turns one-feature-per-line text into an ordered list.
// Blank and whitespace-only lines are dropped; kept lines are trimmed.
func SplitFeatures(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	features := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		features = append(features, line)
	}
	return features
}
