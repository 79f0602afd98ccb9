package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stagehand/internal/api/pb"
	"stagehand/internal/httpapi"
	"stagehand/internal/leaderboard"
	"stagehand/internal/live"
)

// Styles.
var (
	headlinerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	mainActStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	openingActStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ensembleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	colHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	judgeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236"))
	headerBarStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	watchBarStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
)

func tierStyle(tier string) lipgloss.Style {
	switch tier {
	case leaderboard.TierHeadliner:
		return headlinerStyle
	case leaderboard.TierMainAct:
		return mainActStyle
	case leaderboard.TierOpeningAct:
		return openingActStyle
	default:
		return ensembleStyle
	}
}

// Messages.
type tickMsg time.Time

type boardLoadedMsg struct {
	rows        []leaderboard.Row
	deployments []live.Status
	err         error
}

type showEventMsg struct{ evt *pb.ShowEvent }

type watchDoneMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// apiClient fetches leaderboard and deployment state from the HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func (c *apiClient) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func loadBoard(c *apiClient) tea.Cmd {
	return func() tea.Msg {
		var lb httpapi.LeaderboardResponse
		if err := c.getJSON("/api/leaderboard", &lb); err != nil {
			return boardLoadedMsg{err: err}
		}
		var dep httpapi.DeploymentsResponse
		if err := c.getJSON("/api/deployments", &dep); err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{rows: leaderboard.Rows(lb.Entries), deployments: dep.Deployments}
	}
}

// Model.
type model struct {
	api      *apiClient
	grpcAddr string
	logger   *slog.Logger

	rows        []leaderboard.Row
	deployments []live.Status
	loadErr     error
	selected    int

	// Watch mode.
	watching    string
	events      []*pb.ShowEvent
	eventCh     chan *pb.ShowEvent
	watchCancel context.CancelFunc
	watchErr    error

	viewport      viewport.Model
	ready         bool
	width, height int
}

func initialModel(api *apiClient, grpcAddr string, logger *slog.Logger) model {
	return model{api: api, grpcAddr: grpcAddr, logger: logger}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), loadBoard(m.api))
}

// waitForEvent blocks on the watch channel and turns the next stream
// event into a message. It re-arms itself from Update.
func waitForEvent(ch chan *pb.ShowEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return showEventMsg{evt: evt}
	}
}

const maxShowEvents = 200

func (m *model) startWatch(strategy string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan *pb.ShowEvent, 64)
	m.watching = strategy
	m.events = nil
	m.eventCh = ch
	m.watchCancel = cancel
	m.watchErr = nil

	client := live.NewClient(m.grpcAddr, m.logger)
	watch := func() tea.Msg {
		err := client.Watch(ctx, strategy, func(evt *pb.ShowEvent) {
			select {
			case ch <- evt:
			case <-ctx.Done():
			}
		})
		close(ch)
		if ctx.Err() != nil {
			err = nil
		}
		return watchDoneMsg{err: err}
	}
	return tea.Batch(watch, waitForEvent(ch))
}

func (m *model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watching = ""
	m.events = nil
	m.eventCh = nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopWatch()
			return m, tea.Quit
		case "esc":
			if m.watching != "" {
				m.stopWatch()
				m.viewport.SetContent(m.renderContent())
				m.viewport.GotoTop()
			}
			return m, nil
		case "up":
			if m.watching == "" && m.selected > 0 {
				m.selected--
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil
		case "down":
			if m.watching == "" && m.selected < len(m.deployments)-1 {
				m.selected++
				m.viewport.SetContent(m.renderContent())
			}
			return m, nil
		case "enter":
			if m.watching == "" && m.selected < len(m.deployments) {
				watchCmd := m.startWatch(m.deployments[m.selected].Strategy)
				m.viewport.SetContent(m.renderContent())
				m.viewport.GotoTop()
				return m, watchCmd
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
			m.viewport.SetContent(m.renderContent())
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(), loadBoard(m.api))

	case boardLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.rows = msg.rows
			m.deployments = msg.deployments
			if m.selected >= len(m.deployments) {
				m.selected = 0
			}
		}
		if m.ready && m.watching == "" {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case showEventMsg:
		atBottom := m.viewport.AtBottom()
		m.events = append(m.events, msg.evt)
		if len(m.events) > maxShowEvents {
			m.events = m.events[len(m.events)-maxShowEvents:]
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
			if atBottom {
				m.viewport.GotoBottom()
			}
		}
		if m.eventCh != nil {
			return m, waitForEvent(m.eventCh)
		}
		return m, nil

	case watchDoneMsg:
		if msg.err != nil {
			m.watchErr = msg.err
			m.logger.Error("watch ended", "strategy", m.watching, "error", msg.err)
			if m.ready {
				m.viewport.SetContent(m.renderContent())
			}
		}
		return m, nil
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var headerText string
	var bar lipgloss.Style
	if m.watching != "" {
		headerText = fmt.Sprintf(" LIVE SHOW  %s    events: %d ", m.watching, len(m.events))
		bar = watchBarStyle
	} else {
		headerText = fmt.Sprintf(" stagehand  %s    acts: %d    live: %d ",
			time.Now().Format("15:04:05"), len(m.rows), len(m.deployments))
		bar = headerBarStyle
	}
	headerBar := bar.Render(padOrTrunc(headerText, m.width))

	footerLeft := " q quit  up/dn select  enter watch  esc back  pgup/dn scroll"
	if m.watching != "" {
		footerLeft = " q quit  esc back to leaderboard  pgup/dn scroll"
	}
	pct := m.viewport.ScrollPercent() * 100
	footerRight := fmt.Sprintf("%.0f%% ", pct)
	gap := m.width - len(footerLeft) - len(footerRight)
	if gap < 0 {
		gap = 0
	}
	footerBar := footerBarStyle.Render(padOrTrunc(footerLeft+strings.Repeat(" ", gap)+footerRight, m.width))

	return headerBar + "\n" + m.viewport.View() + "\n" + footerBar
}

func (m model) renderContent() string {
	if m.watching != "" {
		return m.renderShow()
	}
	return m.renderBoard()
}

func (m model) renderBoard() string {
	var b strings.Builder

	if m.loadErr != nil {
		b.WriteString(lossStyle.Render(fmt.Sprintf("  api error: %v", m.loadErr)))
		b.WriteString("\n\n")
	}

	b.WriteString(sectionStyle.Width(m.width).Render("  LEADERBOARD  "))
	b.WriteString("\n\n")
	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  (no acts have performed yet)"))
		b.WriteString("\n")
	} else {
		b.WriteString(colHeaderStyle.Render(fmt.Sprintf(
			"  %-4s %-13s %-20s %10s %8s %7s %7s",
			"#", "Tier", "Act", "PnL", "Win%", "Trades", "Sharpe")))
		b.WriteString("\n")
		for _, r := range m.rows {
			pnlStyle := gainStyle
			if strings.HasPrefix(r.PnL, "-") {
				pnlStyle = lossStyle
			}
			b.WriteString(fmt.Sprintf("  %-4d ", r.Rank))
			b.WriteString(tierStyle(r.Tier).Render(fmt.Sprintf("%-13s", r.Tier)))
			b.WriteString(fmt.Sprintf(" %-20s ", r.Name))
			b.WriteString(pnlStyle.Render(fmt.Sprintf("%10s", r.PnL)))
			b.WriteString(fmt.Sprintf(" %8s %7s %7s", r.WinRate, r.Trades, r.Sharpe))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Width(m.width).Render("  LIVE DEPLOYMENTS  "))
	b.WriteString("\n\n")
	if len(m.deployments) == 0 {
		b.WriteString(dimStyle.Render("  (nothing on stage)"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(colHeaderStyle.Render(fmt.Sprintf(
		"  %-20s %12s %10s %7s %5s %6s  %s",
		"Act", "Balance", "PnL", "Trades", "Pos", "Vibe", "Level")))
	b.WriteString("\n")
	for i, d := range m.deployments {
		pos := " "
		if d.InPosition {
			pos = "*"
		}
		pnlStyle := gainStyle
		if d.PnL < 0 {
			pnlStyle = lossStyle
		}
		line := fmt.Sprintf("  %-20s %12s ", d.Strategy, leaderboard.FormatMoney(d.Balance)) +
			pnlStyle.Render(fmt.Sprintf("%10s", leaderboard.FormatPnL(d.PnL))) +
			fmt.Sprintf(" %7d %5s %6.0f  %s", d.TradeCount, pos, d.VibeScore, d.VibeLevel)
		if i == m.selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderShow() string {
	var b strings.Builder
	if m.watchErr != nil {
		b.WriteString(lossStyle.Render(fmt.Sprintf("  stream error: %v", m.watchErr)))
		b.WriteString("\n\n")
	}
	if len(m.events) == 0 {
		b.WriteString(dimStyle.Render("  waiting for the next candle..."))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range m.events {
		ts := time.UnixMilli(e.GetTimestamp()).UTC().Format("15:04:05")
		action := e.GetAction()
		actionStyle := dimStyle
		switch action {
		case "ENTER":
			actionStyle = gainStyle
		case "EXIT":
			actionStyle = lossStyle
			if e.GetPnl() >= 0 {
				actionStyle = gainStyle
			}
		}
		b.WriteString(dimStyle.Render("  " + ts + "  "))
		b.WriteString(priceStyle.Render(fmt.Sprintf("%9.2f  ", e.GetPrice())))
		b.WriteString(actionStyle.Render(fmt.Sprintf("%-5s", action)))
		b.WriteString(fmt.Sprintf("  %s  ", leaderboard.FormatMoney(e.GetBalance())))
		b.WriteString(dimStyle.Render(fmt.Sprintf("vibe %.0f %s", e.GetVibeScore(), e.GetVibeLevel())))
		if action == "EXIT" {
			pnlStyle := gainStyle
			if e.GetPnl() < 0 {
				pnlStyle = lossStyle
			}
			b.WriteString("  ")
			b.WriteString(pnlStyle.Render(leaderboard.FormatPnL(e.GetPnl())))
		}
		if msgText := e.GetMessage(); msgText != "" && action != "HOLD" {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("            " + msgText))
		}
		for _, c := range e.GetComments() {
			b.WriteString("\n")
			b.WriteString(judgeStyle.Render("            " + c.GetJudge() + ": "))
			b.WriteString(c.GetText())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	n := len(s)
	if n >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-n)
}

func main() {
	apiAddr := flag.String("api", "http://localhost:8080", "HTTP API base URL")
	grpcAddr := flag.String("grpc", "localhost:50051", "show feed gRPC address")
	flag.Parse()

	logPath := fmt.Sprintf("/tmp/stagehand-console-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	api := &apiClient{
		baseURL: strings.TrimRight(*apiAddr, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	p := tea.NewProgram(
		initialModel(api, *grpcAddr, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
