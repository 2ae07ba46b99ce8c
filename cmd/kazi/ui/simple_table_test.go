package ui

import (
	"strings"
	"testing"
)

func TestSimpleTableRendersRows(t *testing.T) {
	t.Parallel()

	table := NewSimpleTable("Leave Requests", "ID", "Type", "Status")
	table.AddRow("1", "annual", "pending")
	table.AddRow("2", "sick", "approved")

	out := table.View(NewStyles(LightTheme()))
	for _, want := range []string{"Leave Requests", "ID", "annual", "approved"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, table.Empty) {
		t.Errorf("empty placeholder shown for a populated table")
	}
}

func TestSimpleTableEmptyPlaceholder(t *testing.T) {
	t.Parallel()

	table := NewSimpleTable("Tasks", "ID", "Title")
	table.Empty = "No tasks assigned."

	out := table.View(NewStyles(DarkTheme()))
	if !strings.Contains(out, "No tasks assigned.") {
		t.Errorf("expected placeholder, got:\n%s", out)
	}
	if strings.Contains(out, "ID") {
		t.Errorf("headers should not render without rows:\n%s", out)
	}
}

func TestThemeFor(t *testing.T) {
	if got := ThemeFor("dark"); !got.IsDark {
		t.Error("dark theme expected for name \"dark\"")
	}
	if got := ThemeFor("light"); got.IsDark {
		t.Error("light theme expected for name \"light\"")
	}
}
