package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/mailtriage/internal/attachment"
	"github.com/csheth/mailtriage/internal/classifier"
	"github.com/csheth/mailtriage/internal/submission"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Classifier classifier.Client
	Logger     *zap.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	email := textarea.New()
	email.Placeholder = emailPlaceholder
	email.ShowLineNumbers = false
	email.CharLimit = 0
	email.SetWidth(76)
	email.SetHeight(8)
	email.Focus()

	file := textinput.New()
	file.Placeholder = attachmentPlaceholder
	file.CharLimit = 512
	file.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	panels := submission.NewPanels()
	var controller *submission.Controller
	if config.Classifier != nil {
		controller = submission.New(config.Classifier, panels.View(), submission.WithLogger(log))
	}

	return &model{
		config:      config,
		log:         log,
		controller:  controller,
		panels:      panels,
		jobs:        newJobBus(log),
		running:     map[string]jobSnapshot{},
		focus:       focusEmail,
		email:       email,
		attachment:  file,
		spinner:     spin,
		layout:      newPageLayout(),
		infoMessage: readyMessage,
	}
}

type model struct {
	config     Config
	log        *zap.Logger
	controller *submission.Controller
	panels     *submission.Panels
	jobs       *jobBus
	running    map[string]jobSnapshot

	focus      focusArea
	email      textarea.Model
	attachment textinput.Model
	spinner    spinner.Model
	layout     pageLayout

	activeCycle  uint64
	lastOutcome  *submission.Outcome
	health       healthState
	healthDetail string
	infoMessage  string
	warning      string
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.config.Classifier != nil {
		cmds = append(cmds, m.jobs.Start(jobKindHealth, healthJob(m.config.Classifier)))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.panels.Loading.Visible() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.email.SetWidth(m.layout.contentWidth)
		m.email.SetHeight(m.layout.emailHeight)
		m.attachment.Width = m.layout.contentWidth - 4
		return m, nil
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case cycleResultMsg:
		return m, m.handleCycleResult(msg)
	case healthResultMsg:
		m.handleHealthResult(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlS:
		return m, m.submit()
	case tea.KeyTab:
		return m, m.cycleFocus(1)
	case tea.KeyShiftTab:
		return m, m.cycleFocus(-1)
	case tea.KeyEsc:
		if m.focus == focusAttachment {
			m.attachment.SetValue("")
			m.warning = ""
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.focus {
	case focusEmail:
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(key)
		return m, cmd
	case focusAttachment:
		if key.Type == tea.KeyEnter {
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.attachment, cmd = m.attachment.Update(key)
		return m, cmd
	case focusClassify:
		if key.Type == tea.KeyEnter || key.String() == " " {
			return m, m.submit()
		}
	}
	return m, nil
}

func (m *model) cycleFocus(delta int) tea.Cmd {
	idx := 0
	for i, area := range focusOrder {
		if area == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	return m.setFocus(focusOrder[idx])
}

func (m *model) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	m.email.Blur()
	m.attachment.Blur()
	switch area {
	case focusEmail:
		return m.email.Focus()
	case focusAttachment:
		return m.attachment.Focus()
	default:
		return nil
	}
}

// submit starts a cycle. Begin runs here, inside Update, so the loading
// region is visible in the very next frame.
func (m *model) submit() tea.Cmd {
	if m.controller == nil {
		m.warning = "No classifier configured."
		return nil
	}
	input, err := m.collectInput()
	if err != nil {
		m.warning = fmt.Sprintf("Cannot attach file: %v", err)
		return nil
	}
	m.warning = ""
	cycle := m.controller.Begin(context.Background(), input)
	m.activeCycle = cycle.ID()
	m.infoMessage = loadingMessage
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindClassify, classifyJob(cycle)))
}

func (m *model) collectInput() (submission.Input, error) {
	input := submission.Input{Text: m.email.Value()}
	path := strings.TrimSpace(m.attachment.Value())
	if path == "" {
		return input, nil
	}
	file, err := attachment.FromPath(expandHome(path), "")
	if err != nil {
		return submission.Input{}, err
	}
	input.File = file
	return input, nil
}

func (m *model) handleCycleResult(msg cycleResultMsg) tea.Cmd {
	out := msg.outcome
	if out.Stale || out.Cycle != m.activeCycle {
		return nil
	}
	m.lastOutcome = &out
	switch out.State {
	case submission.StateResults:
		m.infoMessage = fmt.Sprintf("Classified in %s.", out.Duration.Round(time.Millisecond))
	case submission.StateError:
		m.infoMessage = "Adjust the input and press Ctrl+S to try again."
	}
	return nil
}

func (m *model) handleHealthResult(msg healthResultMsg) {
	switch {
	case msg.err != nil:
		m.health = healthUnreachable
		m.healthDetail = "classifier unreachable"
		m.log.Warn("health probe failed", zap.Error(msg.err))
	case msg.health.OK() && msg.health.GeminiEnabled:
		m.health = healthOnline
		m.healthDetail = "classifier online"
	case msg.health.OK():
		m.health = healthDegraded
		m.healthDetail = "classifier online, model disabled"
	default:
		m.health = healthDegraded
		m.healthDetail = fmt.Sprintf("classifier status %q", msg.health.Status)
	}
}
