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

	"github.com/charmbracelet/glamour"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

// renderDetail renders the issue description as markdown with the
// metadata header on top. Falls back to raw text when the renderer
// cannot be constructed (e.g. no usable terminal profile).
func renderDetail(issue *model.Issue, width int) string {
	if issue == nil {
		return statusBarStyle.Render("no issue selected")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(issue.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s · %s", severityBadge(issue.Severity), issue.Status))
	if issue.Assignee != nil {
		b.WriteString(" · assigned to " + issue.Assignee.Name)
	}
	if len(issue.Tags) > 0 {
		b.WriteString("\ntags: " + strings.Join(issue.Tags, ", "))
	}
	if len(issue.Files) > 0 {
		b.WriteString(fmt.Sprintf("\nattachments: %d", len(issue.Files)))
	}
	b.WriteString("\n\n")

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		b.WriteString(issue.Description)
		return b.String()
	}
	out, err := r.Render(issue.Description)
	if err != nil {
		out = issue.Description
	}
	b.WriteString(out)
	return b.String()
}
