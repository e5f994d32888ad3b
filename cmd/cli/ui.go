package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"tcg-pocket-engine/internal/adapter"
	"tcg-pocket-engine/internal/engine/state"
)

// UI styling constants, matched to the same palette a driver for this
// engine's ambient stack renders terminal boards with.
var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#06B6D4")
	accentColor    = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	textColor      = lipgloss.Color("#F8FAFC")
	mutedColor     = lipgloss.Color("#94A3B8")

	baseStyle = lipgloss.NewStyle().
			Foreground(textColor)

	basePanelStyle = baseStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Margin(1, 0)

	headerStyle = baseStyle.
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	resourceStyle = baseStyle.Padding(0, 1)

	resourceValueStyle = baseStyle.
				Bold(true).
				Foreground(accentColor)

	activeStyle = baseStyle.
			Foreground(accentColor).
			Bold(true)

	inactiveStyle = baseStyle.Foreground(mutedColor)

	faintStyle = baseStyle.Foreground(mutedColor)
)

// UI manages the terminal rendering of one CLIClient's observation.
type UI struct {
	obs         *adapter.Observation
	lastCommand string
	lastResult  string
	termWidth   int
	termHeight  int
}

// NewUI creates a new UI instance.
func NewUI() *UI {
	ui := &UI{}
	ui.updateTerminalSize()
	return ui
}

func (ui *UI) updateTerminalSize() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height, err = term.GetSize(int(os.Stderr.Fd()))
	}
	if err != nil {
		width, height, err = term.GetSize(int(os.Stdin.Fd()))
	}

	if err != nil {
		if cols := os.Getenv("COLUMNS"); cols != "" {
			if w, parseErr := strconv.Atoi(cols); parseErr == nil {
				ui.termWidth = w
			} else {
				ui.termWidth = 80
			}
		} else {
			ui.termWidth = 80
		}
		if lines := os.Getenv("LINES"); lines != "" {
			if h, parseErr := strconv.Atoi(lines); parseErr == nil {
				ui.termHeight = h
			} else {
				ui.termHeight = 24
			}
		} else {
			ui.termHeight = 24
		}
	} else {
		ui.termWidth = width
		ui.termHeight = height
	}

	if ui.termWidth < 40 {
		ui.termWidth = 40
	}
}

func (ui *UI) getPanelStyle() lipgloss.Style {
	style := basePanelStyle
	if ui.termWidth >= 80 {
		style = style.Width((ui.termWidth - 8) / 2)
	}
	return style
}

// UpdateObservation stores the latest snapshot for rendering.
func (ui *UI) UpdateObservation(obs *adapter.Observation) {
	ui.obs = obs
}

// SetLastCommand records the last command and its rendered result.
func (ui *UI) SetLastCommand(command, result string) {
	ui.lastCommand = command
	ui.lastResult = result
}

// ClearCommandOutput clears the command output area.
func (ui *UI) ClearCommandOutput() {
	ui.lastCommand = ""
	ui.lastResult = ""
}

// RenderStatus renders the board/score summary.
func (ui *UI) RenderStatus() string {
	if ui.obs == nil {
		return ui.renderDisconnectedStatus()
	}

	sections := []string{
		ui.renderGameInfo(),
		ui.renderBoard("Your board", ui.obs.Own),
		ui.renderBoard("Opponent board", ui.obs.Opponent),
	}

	if ui.termWidth < 100 {
		return strings.Join(sections, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sections...)
}

// RenderFullDisplay renders the status area, a separator, and the last
// command's output.
func (ui *UI) RenderFullDisplay() string {
	ui.updateTerminalSize()

	var parts []string
	parts = append(parts, ui.RenderStatus())
	parts = append(parts, faintStyle.Render(strings.Repeat("─", ui.termWidth)))

	if ui.lastCommand != "" || ui.lastResult != "" {
		parts = append(parts, ui.renderCommandArea())
	}

	return strings.Join(parts, "\n")
}

func (ui *UI) renderCommandArea() string {
	var lines []string
	if ui.lastCommand != "" {
		lines = append(lines, baseStyle.Foreground(primaryColor).Render("tcg> ")+baseStyle.Render(ui.lastCommand))
	}
	if ui.lastResult != "" {
		lines = append(lines, ui.lastResult)
	}
	return strings.Join(lines, "\n")
}

func (ui *UI) renderDisconnectedStatus() string {
	content := headerStyle.Render("Not in a game") + "\n" +
		inactiveStyle.Render("Use 'new' or 'join <id> <player>' to start")
	return ui.getPanelStyle().BorderForeground(warningColor).Render(content)
}

func (ui *UI) renderGameInfo() string {
	if ui.obs == nil {
		return ""
	}

	title := headerStyle.Render("Game")
	var lines []string
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Turn: %s", resourceValueStyle.Render(fmt.Sprintf("%d", ui.obs.TurnNumber))))
	lines = append(lines, fmt.Sprintf("Phase: %s", baseStyle.Foreground(secondaryColor).Render(phaseName(ui.obs.Phase))))

	turnStyle := inactiveStyle
	turnText := "opponent's turn"
	if ui.obs.IsMyTurn {
		turnStyle = activeStyle
		turnText = "your turn"
	}
	lines = append(lines, fmt.Sprintf("To move: %s", turnStyle.Render(turnText)))

	lines = append(lines, fmt.Sprintf("Points: %s - %s",
		resourceValueStyle.Render(fmt.Sprintf("%d", ui.obs.Points)),
		resourceValueStyle.Render(fmt.Sprintf("%d", ui.obs.OpponentPoints))))
	lines = append(lines, fmt.Sprintf("Hand/Deck: %d/%d", ui.obs.HandSize, ui.obs.DeckSize))
	lines = append(lines, fmt.Sprintf("Opponent hand/deck: %d/%d", ui.obs.OpponentHandSize, ui.obs.OpponentDeckSize))
	lines = append(lines, fmt.Sprintf("Prizes remaining: %d", ui.obs.PrizesRemaining))

	content := title + "\n" + strings.Join(lines, "\n")
	return ui.getPanelStyle().Render(content)
}

func (ui *UI) renderBoard(title string, board adapter.BoardView) string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, resourceStyle.Foreground(secondaryColor).Render("Active:"))
	lines = append(lines, ui.renderSlot(board.Active[0]))
	lines = append(lines, "")
	lines = append(lines, resourceStyle.Foreground(secondaryColor).Render("Bench:"))
	for i, slot := range board.Bench {
		lines = append(lines, fmt.Sprintf("[%d] %s", i, ui.renderSlot(slot)))
	}

	content := headerStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return ui.getPanelStyle().Render(content)
}

func (ui *UI) renderSlot(p adapter.PokemonView) string {
	if !p.Occupied {
		return faintStyle.Render("(empty)")
	}

	name := p.Name
	if p.IsEX {
		name += " ex"
	}

	hpStyle := resourceValueStyle
	if p.RemainingHP*2 < p.MaxHP {
		hpStyle = baseStyle.Foreground(errorColor)
	}

	line := fmt.Sprintf("%s %s [+%d energy]",
		baseStyle.Render(name),
		hpStyle.Render(fmt.Sprintf("%d/%d HP", p.RemainingHP, p.MaxHP)),
		p.AttachedEnergy)

	if len(p.Statuses) > 0 {
		names := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			names[i] = statusName(s)
		}
		line += " " + baseStyle.Foreground(warningColor).Render("("+strings.Join(names, ", ")+")")
	}

	return line
}

func phaseName(p state.TurnPhase) string {
	switch p {
	case state.PhaseSetup:
		return "setup"
	case state.PhaseMain:
		return "main"
	case state.PhaseEffectChoice:
		return "effect choice"
	case state.PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

func statusName(s state.StatusCondition) string {
	switch s {
	case state.Poisoned:
		return "poisoned"
	case state.Burned:
		return "burned"
	case state.Asleep:
		return "asleep"
	case state.Paralyzed:
		return "paralyzed"
	case state.Confused:
		return "confused"
	default:
		return "unknown"
	}
}

// ClearScreen clears the terminal screen.
func (ui *UI) ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// RenderPrompt renders the command prompt.
func (ui *UI) RenderPrompt() string {
	return baseStyle.Foreground(primaryColor).Render("tcg> ")
}

// RenderMessage renders a status message with appropriate styling.
func (ui *UI) RenderMessage(msgType string, message string) string {
	var style lipgloss.Style
	var icon string

	switch msgType {
	case "success":
		style = baseStyle.Foreground(accentColor)
		icon = "[ok]"
	case "error":
		style = baseStyle.Foreground(errorColor)
		icon = "[err]"
	case "warning":
		style = baseStyle.Foreground(warningColor)
		icon = "[warn]"
	case "info":
		style = baseStyle.Foreground(secondaryColor)
		icon = "[info]"
	default:
		style = baseStyle
		icon = "[msg]"
	}

	return style.Render(fmt.Sprintf("%s %s", icon, message))
}
