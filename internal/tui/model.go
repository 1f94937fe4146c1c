// Package tui implements the interactive salary prediction form.
package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/salary-oracle/internal/model"
	"github.com/Veraticus/salary-oracle/internal/predict"
	"github.com/Veraticus/salary-oracle/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model of the prediction form.
type Model struct {
	ctx        context.Context
	err        error
	predictors map[model.Mode]predict.Predictor
	result     *predictionResultMsg
	theme      themes.Theme
	keys       KeyMap
	fields     []field
	spinner    spinner.Model
	mode       model.Mode
	focus      int
	width      int
	running    bool
	quitting   bool
}

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(m *Model) {
		m.theme = theme
	}
}

// WithPredictor makes p available for its mode.
func WithPredictor(p predict.Predictor) Option {
	return func(m *Model) {
		if p != nil {
			m.predictors[p.Mode()] = p
		}
	}
}

// WithMode selects the starting mode.
func WithMode(mode model.Mode) Option {
	return func(m *Model) {
		m.mode = mode
	}
}

// New creates the form.
func New(ctx context.Context, opts ...Option) Model {
	m := Model{
		ctx:        ctx,
		predictors: make(map[model.Mode]predict.Predictor),
		theme:      themes.Default,
		keys:       DefaultKeyMap(),
		fields:     newFields(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		mode:       model.ModeLocal,
		width:      80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.theme.Selected
	m.focusField(0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case predictionResultMsg:
		m.running = false
		m.result = &msg
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ToggleMode):
		m.toggleMode()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.focusField(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.focusField(m.focus - 1)
		return m, nil
	}

	f := m.current()
	if f.isChoice() {
		switch {
		case key.Matches(msg, m.keys.Left):
			f.cycle(-1)
		case key.Matches(msg, m.keys.Right):
			f.cycle(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

func (m *Model) visible() []fieldID {
	return modeFields[m.mode]
}

func (m *Model) current() *field {
	return &m.fields[m.visible()[m.focus]]
}

func (m *Model) focusField(i int) {
	n := len(m.visible())
	m.focus = (i%n + n) % n
	for idx := range m.fields {
		m.fields[idx].input.Blur()
	}
	if f := m.current(); !f.isChoice() {
		f.input.Focus()
	}
}

func (m *Model) toggleMode() {
	if m.mode == model.ModeLocal {
		m.mode = model.ModeRemote
	} else {
		m.mode = model.ModeLocal
	}
	m.err = nil
	m.result = nil
	m.focusField(0)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.result = nil

	p, ok := m.predictors[m.mode]
	if !ok {
		m.err = fmt.Errorf("%s prediction is not available", m.mode)
		return m, nil
	}

	raw, err := buildRecord(m.fields, m.mode)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.running = true
	return m, tea.Batch(m.spinner.Tick, runPrediction(m.ctx, p, raw))
}

func runPrediction(ctx context.Context, p predict.Predictor, raw model.RawRecord) tea.Cmd {
	return func() tea.Msg {
		salary, err := p.Predict(ctx, raw)
		return predictionResultMsg{
			err:    err,
			mode:   p.Mode(),
			raw:    raw,
			salary: salary,
		}
	}
}
