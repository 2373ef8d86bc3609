package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anarchistempire/empire/pkg/domain"
)

// Shimmer animation for the ANARCHIST EMPIRE logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders the server name as a slow wave of firelight,
// ember red (#7f1d1d) to flame orange (#f97316).
func renderShimmerLogo(frame int) string {
	const text = "ANARCHIST EMPIRE"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		if text[i] == ' ' {
			out.WriteString("   ")
			continue
		}
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(127 + b*(249-127))
		g := clampByte(29 + b*(115-29))
		bl := clampByte(29 + b*(22-29))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))
		if i < n-1 && text[i+1] != ' ' {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Primary is the site's blood red, accent its flame orange.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f97316"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f97316")).
			Bold(true)

	checkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f97316")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f1d1d")).
			Padding(0, 1)

	cardSelectedStyle = cardStyle.
				BorderForeground(lipgloss.Color("#f97316"))

	statusColors = map[domain.OrderStatus]lipgloss.Color{
		domain.OrderPending:   lipgloss.Color("#d4a844"),
		domain.OrderCompleted: lipgloss.Color("#4ade80"),
		domain.OrderCancelled: lipgloss.Color("#b45555"),
	}

	noticeColors = map[domain.Severity]lipgloss.Color{
		domain.SeverityInfo:        lipgloss.Color("#8890a0"),
		domain.SeveritySuccess:     lipgloss.Color("#4ade80"),
		domain.SeverityDestructive: lipgloss.Color("#ef4444"),
	}
)

// StatusStyle returns a bold style colored for an order status.
func StatusStyle(s domain.OrderStatus) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// renderNotice renders a one-line toast for n.
func renderNotice(n domain.Notice) string {
	if n.IsZero() {
		return ""
	}
	c, ok := noticeColors[n.Severity]
	if !ok {
		c = noticeColors[domain.SeverityInfo]
	}
	title := lipgloss.NewStyle().Foreground(c).Bold(true).Render(n.Title)
	if n.Message == "" {
		return title
	}
	return title + dimStyle.Render(" · "+n.Message)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpView renders the keyboard and command reference overlay.
func helpView(siteURL string) string {
	title := renderShimmerLogo(0)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	keys := []struct{ key, desc string }{
		{"1 2 3", "landing, features, privileges"},
		{"4", "admin panel (sign in)"},
		{"o", "open the website (landing)"},
		{"enter", "buy the selected privilege"},
		{"tab", "next field / next admin section"},
		{"d x", "mark order completed / cancelled"},
		{"c", "copy the order's nickname"},
		{"n", "new privilege or admin"},
		{"r", "reload"},
		{"L", "sign out"},
	}
	commands := []struct{ cmd, desc string }{
		{"empire", "Open the console"},
		{"empire login", "Sign in as an admin"},
		{"empire logout", "Forget the saved session"},
		{"empire orders", "List orders"},
		{"empire privileges", "List privileges on sale"},
		{"empire version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, descStyle.Render(siteURL))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	return b.String()
}
