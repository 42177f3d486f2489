package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/decaflang/decaf/internal/tac"
	"github.com/decaflang/decaf/pkg/decaf"
	"github.com/spf13/cobra"
)

// replCmd opens a read-only bubbletea browser over one compiled program's
// AST, diagnostics, and TAC listing. Decaf has no interpreter (spec.md's
// Non-goals), so unlike the teacher's repl.Start, there is nothing to
// evaluate here — this command compiles once and lets the user page
// through the result, styled with the same Charm libraries.
var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Browse a compiled program's AST, diagnostics, and TAC",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "browse inline source instead of reading from a file")
}

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")).Padding(0, 1)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	errorLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

type replModel struct {
	tabs    []string
	active  int
	bodies  []string
	vp      viewport.Model
	width   int
	height  int
}

func newReplModel(program *decaf.Result) replModel {
	var astBody strings.Builder
	if program.Program != nil {
		fmt.Fprintf(&astBody, "classes: %d\n", len(program.Program.Classes))
		for _, c := range program.Program.Classes {
			fmt.Fprintf(&astBody, "  %s (fields=%d)\n", c.Name, len(c.Fields))
		}
	}

	var diagBody strings.Builder
	if len(program.Errors) == 0 {
		diagBody.WriteString("no diagnostics\n")
	}
	for _, e := range program.Errors {
		diagBody.WriteString(errorLineStyle.Render(e.Error()) + "\n")
	}

	tacBody := "(type check failed; no TAC)\n"
	if program.TAC != nil {
		tacBody = tac.Print(program.TAC)
	}

	vp := viewport.New(80, 20)
	m := replModel{
		tabs:   []string{"ast", "diagnostics", "tac"},
		bodies: []string{astBody.String(), diagBody.String(), tacBody},
		vp:     vp,
	}
	m.vp.SetContent(m.bodies[0])
	return m
}

func (m replModel) Init() tea.Cmd { return nil }

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 4
		m.vp.SetContent(m.bodies[m.active])
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
			m.vp.SetContent(m.bodies[m.active])
			m.vp.GotoTop()
			return m, nil
		case "right", "l", "tab":
			m.active = (m.active + 1) % len(m.tabs)
			m.vp.SetContent(m.bodies[m.active])
			m.vp.GotoTop()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m replModel) View() string {
	var tabs strings.Builder
	for i, t := range m.tabs {
		if i == m.active {
			tabs.WriteString(tabActiveStyle.Render(t))
		} else {
			tabs.WriteString(tabInactiveStyle.Render(t))
		}
		tabs.WriteString(" ")
	}
	footer := footerStyle.Render("left/right: switch tab · up/down: scroll · q: quit")
	return tabs.String() + "\n" + m.vp.View() + "\n" + footer
}

func runRepl(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}
	engine := decaf.New()
	result, err := engine.Compile(context.Background(), input, filename)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newReplModel(result), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
