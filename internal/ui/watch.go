package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tentlab/acinfinity/internal/acapi"
	"github.com/tentlab/acinfinity/internal/service"
	"github.com/tentlab/acinfinity/internal/store"
)

// Message types for async operations
type refreshDoneMsg struct {
	err  error
	took time.Duration
}

type tickMsg time.Time

// watchKeyMap defines key bindings for the watch dashboard
type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh now"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModel is the live telemetry dashboard. It refreshes the snapshot on a
// fixed interval and renders the controller/port/sensor view from the store.
//
// Refreshes are single-flight: a tick that fires while a refresh is still
// running is dropped, which satisfies the service's non-reentrancy contract.
type WatchModel struct {
	service  *service.Service
	interval time.Duration

	spinner    spinner.Model
	help       help.Model
	keys       watchKeyMap
	width      int
	refreshing bool

	lastRefresh time.Time
	lastTook    time.Duration
	lastErr     error
	quitting    bool
}

// NewWatchModel creates the dashboard around a refresh service.
// interval is the time between automatic refreshes.
func NewWatchModel(svc *service.Service, interval time.Duration) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(WarningColor)

	return WatchModel{
		service:  svc,
		interval: interval,
		spinner:  sp,
		help:     help.New(),
		keys:     newWatchKeyMap(),
		width:    GetTerminalWidth(),
	}
}

// Init starts the spinner and kicks off the first refresh immediately.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// refreshCmd runs one refresh pass off the update loop.
func (m WatchModel) refreshCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		start := time.Now()
		err := svc.Refresh()
		return refreshDoneMsg{err: err, took: time.Since(start)}
	}
}

func (m WatchModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if !m.refreshing {
				m.refreshing = true
				return m, m.refreshCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}
		if m.width < MinTerminalWidth {
			m.width = MinTerminalWidth
		}

	case tickMsg:
		if m.refreshing {
			// A refresh is still in flight; skip this cycle
			return m, m.scheduleTick()
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case refreshDoneMsg:
		m.refreshing = false
		m.lastErr = msg.err
		m.lastTook = msg.took
		if msg.err == nil {
			m.lastRefresh = time.Now()
		}
		return m, m.scheduleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("AC INFINITY — LIVE TELEMETRY"))
	b.WriteString("\n\n")

	controllers := m.service.Store().Controllers()
	if len(controllers) == 0 {
		if m.refreshing {
			b.WriteString(fmt.Sprintf("  %s Fetching controllers...\n", m.spinner.View()))
		} else if m.lastErr != nil {
			b.WriteString(ErrorMessageStyle.Render(fmt.Sprintf("  %s %v", FailureMarker, m.lastErr)))
			b.WriteString("\n")
		} else {
			b.WriteString(ControllerMetaStyle.Render("  No controllers on this account."))
			b.WriteString("\n")
		}
	}

	for _, controller := range controllers {
		b.WriteString(ControllerBoxStyle(m.width).Render(m.renderController(controller)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

func (m WatchModel) renderController(controller *store.Controller) string {
	var b strings.Builder

	b.WriteString(ControllerNameStyle.Render(controller.Name))
	b.WriteString("\n")
	b.WriteString(ControllerMetaStyle.Render(
		fmt.Sprintf("%s · fw %s · %d ports", controller.Model, controller.FirmwareVersion, len(controller.Ports))))
	b.WriteString("\n")

	for _, sensor := range controller.Sensors {
		if sensor.AccessPort != 0 {
			continue
		}
		b.WriteString(SensorLabelStyle.Render(sensor.TypeName()))
		b.WriteString(SensorValueStyle.Render(fmt.Sprintf("%.2f", sensor.Value())))
		b.WriteString("\n")
	}

	for _, port := range controller.Ports {
		b.WriteString(m.renderPort(controller.DeviceID, port))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m WatchModel) renderPort(deviceID string, port *store.Port) string {
	online := toInt(m.service.Store().PortProperty(deviceID, port.Index, acapi.PortPropertyKeyOnline, 0)) == 1
	level := toInt(m.service.Store().PortProperty(deviceID, port.Index, acapi.PortPropertyKeySpeak, 0))

	marker := PortOfflineStyle.Render(OfflineMarker)
	if online {
		marker = PortOnlineStyle.Render(OnlineMarker)
	}

	return fmt.Sprintf("  %s %s %s",
		marker,
		PortNameStyle.Render(fmt.Sprintf("%-20s", fmt.Sprintf("%d: %s", port.Index, port.Name))),
		ControllerMetaStyle.Render(fmt.Sprintf("level %d/10", level)),
	)
}

func (m WatchModel) renderStatusBar() string {
	if m.refreshing {
		return StatusBarStyle.Render(
			fmt.Sprintf("%s %s", m.spinner.View(), RefreshingStyle.Render("refreshing...")))
	}

	if m.lastErr != nil {
		return StatusBarStyle.Render(
			ErrorMessageStyle.Render(fmt.Sprintf("%s refresh failed: %v", FailureMarker, m.lastErr)))
	}

	if m.lastRefresh.IsZero() {
		return StatusBarStyle.Render("waiting for first refresh")
	}

	return StatusBarStyle.Render(fmt.Sprintf(
		"last refresh %s (took %s) · next in %ds",
		m.lastRefresh.Format("15:04:05"), m.lastTook.Round(time.Millisecond), int(m.interval.Seconds())))
}

// toInt converts a cached property value to an int. Cached blobs hold
// json.Number values; defaults supplied by the dashboard are plain ints.
func toInt(v any) int {
	switch value := v.(type) {
	case json.Number:
		i, _ := value.Int64()
		return int(i)
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}
