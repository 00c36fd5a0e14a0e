package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

func TestRenderBarScaling(t *testing.T) {
	line := renderBar("HIGH", 10, 10, severityColor(model.SeverityHigh))
	assert.Contains(t, line, "HIGH")
	assert.Equal(t, barWidth, strings.Count(line, "█"))

	half := renderBar("LOW", 5, 10, severityColor(model.SeverityLow))
	assert.Equal(t, barWidth/2, strings.Count(half, "█"))
}

func TestRenderBarNonZeroAlwaysVisible(t *testing.T) {
	line := renderBar("LOW", 1, 1000, severityColor(model.SeverityLow))
	assert.Equal(t, 1, strings.Count(line, "█"))

	empty := renderBar("LOW", 0, 1000, severityColor(model.SeverityLow))
	assert.Equal(t, 0, strings.Count(empty, "█"))
}

func TestRenderDashboardNilStats(t *testing.T) {
	out := renderDashboard(nil)
	assert.Contains(t, out, "loading")
}

func TestRenderDashboardCounts(t *testing.T) {
	out := renderDashboard(&model.DashboardStats{
		TotalIssues:      7,
		OpenIssues:       3,
		InProgressIssues: 2,
		ClosedIssues:     2,
		IssuesBySeverity: map[string]int{"HIGH": 4, "LOW": 3},
		IssuesByStatus:   map[string]int{"OPEN": 3, "DONE": 2},
	})
	assert.Contains(t, out, "total 7")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "By status")
}

func TestIssueRows(t *testing.T) {
	rows := issueRows([]model.Issue{
		{
			Id:        "i-1",
			Title:     "broken login",
			Severity:  model.SeverityCritical,
			Status:    model.StatusOpen,
			UpdatedAt: time.Date(2025, 3, 4, 21, 10, 0, 0, time.UTC),
		},
	})
	assert.Len(t, rows, 1)
	assert.Equal(t, "CRITICAL", rows[0][0])
	assert.Equal(t, "OPEN", rows[0][1])
	assert.Equal(t, "broken login", rows[0][2])
	assert.Equal(t, "2025-03-04 21:10", rows[0][3])
}

func TestRenderDetailNil(t *testing.T) {
	assert.Contains(t, renderDetail(nil, 80), "no issue selected")
}

func TestRenderDetailMetadata(t *testing.T) {
	out := renderDetail(&model.Issue{
		Title:       "crash on save",
		Description: "# Steps\n\n1. open\n2. save",
		Severity:    model.SeverityHigh,
		Status:      model.StatusTriaged,
		Tags:        []string{"crash", "editor"},
		Assignee:    &model.User{Name: "Mina"},
	}, 80)
	assert.Contains(t, out, "crash on save")
	assert.Contains(t, out, "assigned to Mina")
	assert.Contains(t, out, "crash, editor")
}
