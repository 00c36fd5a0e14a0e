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
	"github.com/charmbracelet/lipgloss"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	paneBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// severityColor 严重级别对应的配色，与看板保持一致
func severityColor(s model.Severity) lipgloss.Color {
	switch s {
	case model.SeverityCritical:
		return lipgloss.Color("196")
	case model.SeverityHigh:
		return lipgloss.Color("208")
	case model.SeverityMedium:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("34")
	}
}

func severityBadge(s model.Severity) string {
	return lipgloss.NewStyle().Foreground(severityColor(s)).Render(string(s))
}
