package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	pm "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/settings"
)

type interactiveModel struct {
	polyline  *pm.Polyline
	inputs    [3]textinput.Model
	focused   int
	precision int
	opts      []pm.ProjectOption
	result    *pm.Result
	err       error
}

func newInteractiveModel(p *pm.Polyline, precision int, opts []pm.ProjectOption) interactiveModel {
	mdl := interactiveModel{polyline: p, precision: precision, opts: opts}
	last, hasLast := settings.LoadLastQuery()
	lastCoords := [3]float64{last.X, last.Y, last.Z}
	for i, axis := range axes {
		ti := textinput.New()
		ti.Prompt = axis + ": "
		ti.Placeholder = "0"
		ti.CharLimit = 64
		if hasLast {
			ti.SetValue(formatFloat(lastCoords[i], -1))
		}
		mdl.inputs[i] = ti
	}
	mdl.inputs[0].Focus()
	return mdl
}

func (mdl interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (mdl *interactiveModel) focus(i int) tea.Cmd {
	mdl.inputs[mdl.focused].Blur()
	mdl.focused = (i + len(mdl.inputs)) % len(mdl.inputs)
	return mdl.inputs[mdl.focused].Focus()
}

func (mdl *interactiveModel) project() {
	mdl.result = nil
	mdl.err = nil
	q, err := ParseQuery(mdl.inputs[0].Value(), mdl.inputs[1].Value(), mdl.inputs[2].Value())
	if err != nil {
		mdl.err = err
		return
	}
	res, err := mdl.polyline.Project(q, mdl.opts...)
	if err != nil {
		mdl.err = err
		return
	}
	settings.SaveLastQuery(q)
	mdl.result = &res
}

func (mdl interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return mdl, tea.Quit
		case tea.KeyEnter:
			mdl.project()
			return mdl, nil
		case tea.KeyTab, tea.KeyDown:
			return mdl, mdl.focus(mdl.focused + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return mdl, mdl.focus(mdl.focused - 1)
		}
	}

	var cmd tea.Cmd
	mdl.inputs[mdl.focused], cmd = mdl.inputs[mdl.focused].Update(msg)
	return mdl, cmd
}

func (mdl interactiveModel) View() string {
	sb := strings.Builder{}
	sb.WriteString(headerStyle.Render("Please enter a point to calculate projection."))
	sb.WriteString("\n\n")
	for _, in := range mdl.inputs {
		sb.WriteString(in.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if mdl.err != nil {
		sb.WriteString(RenderError(mdl.err))
	}
	if mdl.result != nil {
		sb.WriteString(Render(*mdl.result, mdl.precision))
	}
	sb.WriteString("\nenter: project • tab: next field • esc: quit\n")
	return docStyle.Render(sb.String())
}

func interactive(p *pm.Polyline, precision int, opts []pm.ProjectOption) error {
	prog := tea.NewProgram(newInteractiveModel(p, precision, opts))
	_, err := prog.Run()
	return err
}
