package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xarlan/zigbee/internal/pcap"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/dump"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
)

type viewMode int

const (
	viewKind viewMode = iota
	viewFields
	viewResult
)

// Result is the frame composed in one session.
type Result struct {
	Frame frame.Frame
	Data  []byte
	Err   error
}

// Hex returns the serialized frame as catalog style hex, with the FCS
// appended when fcs is set.
func (r Result) Hex(fcs bool) string {
	data := r.Data
	if fcs {
		data = codec.AppendFCS(data)
	}
	return pcap.FormatHex(data)
}

type composeModel struct {
	mode      viewMode
	fcs       bool
	choice    *KindChoice
	kindForm  *huh.Form
	fieldForm *huh.Form
	inputs    FieldInputs
	current   frame.Frame
	result    *Result
	status    string
	quitting  bool
}

func newComposeModel(fcs bool) composeModel {
	choice := DefaultKindChoice()
	return composeModel{
		mode:     viewKind,
		fcs:      fcs,
		choice:   choice,
		kindForm: buildKindForm(choice),
	}
}

func (m composeModel) Init() tea.Cmd {
	return m.kindForm.Init()
}

func (m composeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case viewKind:
		formModel, cmd := m.kindForm.Update(msg)
		m.kindForm = formModel.(*huh.Form)
		switch m.kindForm.State {
		case huh.StateCompleted:
			return m.startFields()
		case huh.StateAborted:
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	case viewFields:
		formModel, cmd := m.fieldForm.Update(msg)
		m.fieldForm = formModel.(*huh.Form)
		switch m.fieldForm.State {
		case huh.StateCompleted:
			m.result = m.finish()
			m.status = ""
			m.mode = viewResult
			return m, nil
		case huh.StateAborted:
			return m.restart()
		}
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			m = m.copyResult()
		case "n":
			return m.restart()
		}
	}
	return m, nil
}

func (m composeModel) startFields() (tea.Model, tea.Cmd) {
	f, err := m.choice.NewFrame()
	if err != nil {
		m.result = &Result{Err: err}
		m.mode = viewResult
		return m, nil
	}
	m.current = f
	m.inputs = FieldInputs{}
	m.fieldForm = buildFieldForm(f, m.inputs)
	m.mode = viewFields
	return m, m.fieldForm.Init()
}

func (m composeModel) finish() *Result {
	if err := m.inputs.Apply(m.current); err != nil {
		return &Result{Frame: m.current, Err: err}
	}
	data, err := frame.Serialize(m.current)
	return &Result{Frame: m.current, Data: data, Err: err}
}

func (m composeModel) restart() (tea.Model, tea.Cmd) {
	next := newComposeModel(m.fcs)
	next.choice.Kind = m.choice.Kind
	return next, next.Init()
}

func (m composeModel) copyResult() composeModel {
	if m.result == nil || m.result.Err != nil {
		m.status = "Copy: no frame available"
		return m
	}
	if err := clipboard.WriteAll(m.result.Hex(m.fcs)); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return m
	}
	m.status = "Frame copied to clipboard"
	return m
}

func (m composeModel) View() string {
	if m.quitting {
		return ""
	}
	frameStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(1, 2)
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	switch m.mode {
	case viewKind:
		return frameStyle.Render(m.kindForm.View())
	case viewFields:
		return frameStyle.Render(m.fieldForm.View()) +
			footerStyle.Render("\nLeave a field empty to keep it unset. esc=start over")
	}
	return frameStyle.Render(RenderResult(m.result, m.fcs, m.status)) +
		footerStyle.Render("\n\nKeys: c=copy n=new q=quit")
}

// RenderResult formats a composed frame: its field dump and its octets.
func RenderResult(r *Result, fcs bool, status string) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	var b strings.Builder
	if r == nil {
		b.WriteString("(no frame)")
		return b.String()
	}
	if r.Frame != nil {
		title := kindLabel(r.Frame.Kind())
		if layout := layoutOf(r.Frame); layout != "" {
			title += " (" + layout + " layout)"
		}
		b.WriteString(titleStyle.Render(title) + "\n\n")
		dump.NewPrinter(&b, dump.ColorStyles()).Frame(r.Frame)
	}
	if r.Err != nil {
		b.WriteString("\n" + errStyle.Render("Error: "+r.Err.Error()))
	} else {
		fmt.Fprintf(&b, "\n%d bytes: %s", len(r.Data), r.Hex(fcs))
	}
	if status != "" {
		b.WriteString("\n\n" + status)
	}
	return b.String()
}

// RunCompose starts the interactive compose form and returns the last frame
// composed, or nil when the user quit before finishing one.
func RunCompose(fcs bool) (*Result, error) {
	program := tea.NewProgram(newComposeModel(fcs))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(composeModel)
	if !ok {
		return nil, fmt.Errorf("unexpected compose model %T", final)
	}
	return m.result, nil
}
