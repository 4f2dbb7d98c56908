package ui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"mmclife/collector"
	"mmclife/engine"
	"mmclife/model"
)

// state is the session controller state. The loop is
// scanning → choosing → analyzing → scanning, with exit available from
// the menu and from an interrupt at any point.
type state int

const (
	stateScanning state = iota
	stateChoosing
	stateAnalyzing
)

const exitMessage = "Goodbye."

type devicesMsg struct {
	devices []model.Device
	err     error
}

type analysisMsg struct {
	device model.Device
	report string
	err    error
}

// Model drives the interactive device-selection loop.
type Model struct {
	scanner  *collector.Scanner
	regs     *collector.RegisterReader
	styles   Styles
	peCycles int

	state    state
	devices  []model.Device
	selected model.Device
	input    string // digit buffer for the menu choice
	warn     string // last rejected-input warning, shown above the prompt
	final    string // message shown when the program ends
	quitting bool
}

// NewModel builds the session model.
func NewModel(scanner *collector.Scanner, regs *collector.RegisterReader, styles Styles, peCycles int) Model {
	return Model{
		scanner:  scanner,
		regs:     regs,
		styles:   styles,
		peCycles: peCycles,
	}
}

func (m Model) Init() tea.Cmd {
	return m.scanCmd()
}

func (m Model) scanCmd() tea.Cmd {
	return func() tea.Msg {
		devs, err := m.scanner.Devices()
		return devicesMsg{devices: devs, err: err}
	}
}

// analyzeCmd runs the full pipeline for one device. Any failure aborts
// this device only; the session returns to scanning either way.
func (m Model) analyzeCmd(dev model.Device) tea.Cmd {
	return func() tea.Msg {
		stats, err := m.scanner.WriteStats(dev.Name)
		if err != nil {
			return analysisMsg{device: dev, err: err}
		}
		dump, err := m.regs.Read(context.Background(), dev)
		if err != nil {
			return analysisMsg{device: dev, err: err}
		}
		rep := engine.Analyze(dev, stats, collector.ParseLifetime(dump), m.peCycles)
		return analysisMsg{device: dev, report: RenderReport(rep, m.styles)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.InterruptMsg:
		// External SIGINT behaves like choosing Exit.
		return m.exit()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case devicesMsg:
		if msg.err != nil {
			m.final = fmt.Sprintf("Device scan failed: %v", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		if len(msg.devices) == 0 {
			m.final = "No eMMC/SD devices found."
			m.quitting = true
			return m, tea.Quit
		}
		m.devices = msg.devices
		m.state = stateChoosing
		m.input = ""
		m.warn = ""
		return m, nil

	case analysisMsg:
		var out string
		if msg.err != nil {
			out = m.styles.Error.Render(fmt.Sprintf("Analysis of %s failed: %v", msg.device.Path, msg.err))
		} else {
			out = msg.report
		}
		m.state = stateScanning
		m.warn = ""
		return m, tea.Sequence(tea.Println(out), m.scanCmd())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.exit()
	}

	if m.state != stateChoosing {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.choose()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		// Menu choices match ^[0-9]+$; everything else is ignored at
		// the key level so the buffer never holds an unparsable value.
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.input) < 3 {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

// choose validates the buffered menu input against [0, N]. Bad input is
// rejected with a warning and the prompt is offered again.
func (m Model) choose() (tea.Model, tea.Cmd) {
	if m.input == "" {
		m.warn = fmt.Sprintf("Enter a number between 0 and %d.", len(m.devices))
		return m, nil
	}
	n, err := strconv.Atoi(m.input)
	if err != nil || n > len(m.devices) {
		m.warn = fmt.Sprintf("Invalid selection %q — enter a number between 0 and %d.", m.input, len(m.devices))
		m.input = ""
		return m, nil
	}
	if n == 0 {
		return m.exit()
	}
	m.selected = m.devices[n-1]
	m.state = stateAnalyzing
	m.warn = ""
	m.input = ""
	return m, m.analyzeCmd(m.selected)
}

func (m Model) exit() (tea.Model, tea.Cmd) {
	m.final = exitMessage
	m.quitting = true
	return m, tea.Quit
}

// Final reports the message to print after the program ends.
func (m Model) Final() string { return m.final }

func (m Model) View() string {
	if m.quitting {
		return m.final + "\n"
	}

	switch m.state {
	case stateScanning:
		return m.styles.Info.Render("Scanning for eMMC/SD devices...") + "\n"

	case stateAnalyzing:
		return m.styles.Info.Render(fmt.Sprintf("Analyzing %s (reading EXT_CSD registers)...", m.selected.Path)) + "\n"
	}

	s := m.styles.Title.Render("Select a device to analyze") + "\n\n"
	for i, d := range m.devices {
		s += fmt.Sprintf("  %d) %-14s (%.2f GB)\n", i+1, d.Path, d.CapacityGB)
	}
	s += "  0) Exit\n\n"
	if m.warn != "" {
		s += m.styles.Warning.Render(m.warn) + "\n"
	}
	s += "> " + m.input
	return s
}
