// Copyright 2025 Tracker Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tui 终端交互界面：问题列表、详情、看板三个视图，
// 通过推送通道实时刷新。
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-tracker/tracker/internal/tracker/api"
	"github.com/go-tracker/tracker/internal/tracker/controller"
	"github.com/go-tracker/tracker/internal/tracker/model"
)

// Tab identifies which view is active.
type Tab int

const (
	TabIssues Tab = iota
	TabDashboard
)

// issuesMsg delivers a refreshed issue snapshot through the message loop.
type issuesMsg struct {
	issues []model.Issue
}

// detailMsg delivers a fetched issue detail.
type detailMsg struct {
	issue *model.Issue
}

// statsMsg delivers dashboard stats.
type statsMsg struct {
	stats *model.DashboardStats
}

// pushMsg is sent when a live update arrives on the realtime channel.
type pushMsg struct{}

type errMsg struct {
	err error
}

// errFadeMsg clears the error notice from the status bar after a delay.
type errFadeMsg struct{}

const errFadeDelay = 4 * time.Second

// Model is the bubbletea root model.
type Model struct {
	ctrl *controller.IssueController
	api  *api.Client

	tab      Tab
	tbl      table.Model
	detail   viewport.Model
	issues   []model.Issue
	selected *model.Issue
	stats    *model.DashboardStats

	// pushCh is fed by the realtime callback; the Init command pumps
	// it into the message loop.
	pushCh chan struct{}

	width  int
	height int
	notice string
	err    error
}

func New(ctrl *controller.IssueController, apiClient *api.Client) *Model {
	columns := []table.Column{
		{Title: "Severity", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Title", Width: 48},
		{Title: "Updated", Width: 16},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	m := &Model{
		ctrl:   ctrl,
		api:    apiClient,
		tbl:    tbl,
		detail: viewport.New(60, 16),
		pushCh: make(chan struct{}, 8),
	}
	ctrl.OnChange(func(issues []model.Issue) {
		select {
		case m.pushCh <- struct{}{}:
		default:
		}
	})
	return m
}

// Notify is the realtime push hook; safe to call from any goroutine.
func (m *Model) Notify() {
	select {
	case m.pushCh <- struct{}{}:
	default:
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.statsCmd(), m.waitPush())
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		issues, err := m.ctrl.Refresh(ctx)
		if err != nil {
			return errMsg{err}
		}
		return issuesMsg{issues}
	}
}

func (m *Model) detailCmd(issueId string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		issue, err := m.ctrl.Detail(ctx, issueId)
		if err != nil {
			return errMsg{err}
		}
		return detailMsg{issue}
	}
}

func (m *Model) statsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		stats, err := m.api.DashboardStats(ctx)
		if err != nil {
			return errMsg{err}
		}
		return statsMsg{stats}
	}
}

// waitPush blocks on the push channel and re-arms itself after each
// delivery, so live updates keep flowing into Update.
func (m *Model) waitPush() tea.Cmd {
	return func() tea.Msg {
		<-m.pushCh
		return pushMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetHeight(msg.Height - 8)
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.tab == TabIssues {
				m.tab = TabDashboard
				return m, m.statsCmd()
			}
			m.tab = TabIssues
			return m, nil
		case "r":
			return m, m.refreshCmd()
		case "enter":
			if row := m.tbl.SelectedRow(); row != nil {
				idx := m.tbl.Cursor()
				if idx >= 0 && idx < len(m.issues) {
					return m, m.detailCmd(m.issues[idx].Id)
				}
			}
			return m, nil
		case "esc":
			m.selected = nil
			return m, nil
		}

	case issuesMsg:
		m.issues = msg.issues
		m.tbl.SetRows(issueRows(msg.issues))
		return m, nil

	case detailMsg:
		m.selected = msg.issue
		m.detail.SetContent(renderDetail(msg.issue, m.detail.Width))
		m.detail.GotoTop()
		return m, nil

	case statsMsg:
		m.stats = msg.stats
		return m, nil

	case pushMsg:
		// 推送只是信号，真实数据仍从控制器快照取
		m.issues = m.ctrl.Issues()
		m.tbl.SetRows(issueRows(m.issues))
		cmds := []tea.Cmd{m.waitPush()}
		if m.tab == TabDashboard {
			cmds = append(cmds, m.statsCmd())
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.err = msg.err
		return m, tea.Tick(errFadeDelay, func(time.Time) tea.Msg { return errFadeMsg{} })

	case errFadeMsg:
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	if m.selected != nil {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.tbl, cmd = m.tbl.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	header := titleStyle.Render("Tracker")
	footer := statusBarStyle.Render("tab: switch view · r: refresh · enter: detail · esc: back · q: quit")
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error())
	}

	var body string
	switch {
	case m.tab == TabDashboard:
		body = renderDashboard(m.stats)
	case m.selected != nil:
		body = m.detail.View()
	default:
		body = m.tbl.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		paneBorderStyle.Render(body),
		footer,
	)
}

// issueRows 表格行；标题按列宽截断由 table 组件负责
func issueRows(issues []model.Issue) []table.Row {
	rows := make([]table.Row, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, table.Row{
			string(is.Severity),
			string(is.Status),
			is.Title,
			is.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}
