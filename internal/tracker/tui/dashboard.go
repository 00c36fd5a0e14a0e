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

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

// barWidth 统计条最大宽度（字符数）
const barWidth = 30

// renderBar draws a single horizontal bar scaled against max.
func renderBar(label string, count, max int, color lipgloss.Color) string {
	filled := 0
	if max > 0 {
		filled = count * barWidth / max
	}
	if count > 0 && filled == 0 {
		filled = 1 // 非零计数至少显示一格
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	return fmt.Sprintf("%-12s %s %d", label, bar, count)
}

// renderDashboard lays out the stats summary and the per-severity /
// per-status bar charts.
func renderDashboard(stats *model.DashboardStats) string {
	if stats == nil {
		return statusBarStyle.Render("loading stats...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("total %d · open %d · in progress %d · closed %d\n\n",
		stats.TotalIssues, stats.OpenIssues, stats.InProgressIssues, stats.ClosedIssues))

	b.WriteString("By severity\n")
	max := 0
	for _, n := range stats.IssuesBySeverity {
		if n > max {
			max = n
		}
	}
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		b.WriteString(renderBar(string(sev), stats.IssuesBySeverity[string(sev)], max, severityColor(sev)))
		b.WriteString("\n")
	}

	b.WriteString("\nBy status\n")
	max = 0
	for _, n := range stats.IssuesByStatus {
		if n > max {
			max = n
		}
	}
	for _, st := range []model.Status{model.StatusOpen, model.StatusTriaged, model.StatusInProgress, model.StatusDone} {
		b.WriteString(renderBar(string(st), stats.IssuesByStatus[string(st)], max, lipgloss.Color("39")))
		b.WriteString("\n")
	}
	return b.String()
}
