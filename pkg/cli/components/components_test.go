package components_test

import (
	"strings"
	"testing"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
)

func TestTabularList(t *testing.T) {
	items := []components.ListItem{
		{Name: "create", Description: "Capture the current database state"},
		{Name: "ls", Description: "Show available snapshots"},
	}

	output := components.TabularList(items)

	for _, item := range items {
		if !strings.Contains(output, item.Name) || !strings.Contains(output, item.Description) {
			t.Errorf("expected %q and %q in the list, got %q", item.Name, item.Description, output)
		}
	}

	// Shorter names get longer leaders so descriptions line up.
	lines := strings.Split(output, "\n\n")

	if len(lines) != 2 {
		t.Fatalf("expected 2 list rows, got %d", len(lines))
	}

	first := strings.Count(lines[0], "･")
	second := strings.Count(lines[1], "･")

	if second-first != len("create")-len("ls") {
		t.Errorf("expected leaders to compensate for name length, got %d and %d dots", first, second)
	}
}

func TestContainer(t *testing.T) {
	output := components.Container("first", "second")

	if !strings.Contains(output, "first") || !strings.Contains(output, "second") {
		t.Errorf("expected both sections, got %q", output)
	}

	if strings.Index(output, "first") > strings.Index(output, "second") {
		t.Errorf("expected sections in order, got %q", output)
	}
}

func TestAlerts(t *testing.T) {
	for name, render := range map[string]func(string) string{
		"Error":   components.ErrorAlert,
		"Success": components.SuccessAlert,
		"Warning": components.WarningAlert,
	} {
		if !strings.Contains(render("the message"), "the message") {
			t.Errorf("expected the %s alert to carry its message", name)
		}
	}
}
