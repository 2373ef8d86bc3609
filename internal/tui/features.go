package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type feature struct {
	title       string
	description string
}

var serverFeatures = []feature{
	{"PvP without limits", "Fight anywhere and anyone. No safe zones and no rules."},
	{"Griefing allowed", "Destroy, build, seize territory. Total freedom of action."},
	{"Custom mechanics", "Unique crafts, weapons and mechanics for a more interesting game."},
	{"Economy", "A developed economy with an auction house and player trading."},
	{"Powerful hardware", "High-performance servers without lag or delays."},
	{"Clan system", "Build your empire, team up with friends or fight alone."},
}

type featuresModel struct {
	width  int
	height int
	offset int
}

func newFeaturesModel() featuresModel {
	return featuresModel{}
}

func (m featuresModel) Update(msg tea.Msg) (featuresModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.offset < len(serverFeatures)-1 {
				m.offset++
			}
		case "k", "up":
			if m.offset > 0 {
				m.offset--
			}
		}
	}
	return m, nil
}

func (m featuresModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerLine(primaryStyle.Render("SERVER FEATURES"), m.width) + "\n")
	b.WriteString(centerLine(dimStyle.Render("Everything you need for real anarchy in Minecraft"), m.width) + "\n\n")

	for i, f := range serverFeatures[m.offset:] {
		fmt.Fprintf(&b, "  %s %s\n", accentStyle.Render(fmt.Sprintf("%d.", m.offset+i+1)), selectedStyle.Render(f.title))
		fmt.Fprintf(&b, "     %s\n\n", dimStyle.Render(f.description))
	}

	b.WriteString(centerLine(priceStyle.Render("And this is only the beginning!"), m.width) + "\n")
	b.WriteString(centerLine(dimStyle.Render("We keep growing the server, adding mechanics and listening to the community."), m.width) + "\n")
	return b.String()
}
