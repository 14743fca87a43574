package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clustertools/confaudit/internal/audit"
)

func TestLineAdded(t *testing.T) {
	e := audit.Event{
		Version: 4, Type: "yarn-site",
		Action: audit.ActionAdded, Key: "yarn.timeline.enabled", Value: "true",
	}

	got := Line(e)
	want := "yarn-site: version 4 - ADDED - yarn.timeline.enabled - true"
	if got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}

func TestLineRemoved(t *testing.T) {
	e := audit.Event{
		Version: 5, Type: "yarn-site",
		Action: audit.ActionRemoved, Key: "yarn.old.setting", Value: "legacy",
	}

	got := Line(e)
	want := "yarn-site: version 5 - REMOVED - yarn.old.setting - legacy"
	if got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}

func TestLineChanged(t *testing.T) {
	e := audit.Event{
		Version: 6, Type: "core-site",
		Action: audit.ActionChanged, Key: "fs.defaultFS",
		OldValue: "hdfs://old:8020", Value: "hdfs://new:8020",
	}

	got := Line(e)
	want := "core-site: version 6 - CHANGED - fs.defaultFS - hdfs://old:8020 => hdfs://new:8020"
	if got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}

func TestRenderTextOneLinePerEvent(t *testing.T) {
	events := []audit.Event{
		{Version: 1, Type: "t", Action: audit.ActionAdded, Key: "a", Value: "1"},
		{Version: 2, Type: "t", Action: audit.ActionRemoved, Key: "a", Value: "1"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, events, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Error("output must be LF-terminated")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
}

func TestWriteEmptyLogProducesEmptyFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "audit.log")

	if err := Write(nil, dest, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", data)
	}
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "audit.log")
	if err := os.WriteFile(dest, []byte("stale content\nmore stale\n"), 0644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	events := []audit.Event{
		{Version: 1, Type: "t", Action: audit.ActionAdded, Key: "a", Value: "1"},
	}
	if err := Write(events, dest, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "t: version 1 - ADDED - a - 1\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestRenderJSON(t *testing.T) {
	events := []audit.Event{
		{Version: 2, Type: "t", Action: audit.ActionChanged, Key: "a", Value: "2", OldValue: "1"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, events, FormatJSON); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d records, want 1", len(decoded))
	}
	rec := decoded[0]
	if rec["id"] == "" || rec["id"] == nil {
		t.Error("expected generated id")
	}
	if rec["action"] != "CHANGED" {
		t.Errorf("action = %v, want CHANGED", rec["action"])
	}
	if rec["old_value"] != "1" {
		t.Errorf("old_value = %v, want 1", rec["old_value"])
	}
}

func TestMarkdownGroupsByVersion(t *testing.T) {
	events := []audit.Event{
		{Version: 1, Type: "t", Action: audit.ActionAdded, Key: "a", Value: "1"},
		{Version: 1, Type: "t", Action: audit.ActionAdded, Key: "b", Value: "x|y"},
		{Version: 2, Type: "t", Action: audit.ActionRemoved, Key: "b", Value: "x|y"},
	}

	out := Markdown(events)
	if strings.Count(out, "## Version") != 2 {
		t.Errorf("expected 2 version headings:\n%s", out)
	}
	if !strings.Contains(out, `x\|y`) {
		t.Errorf("pipe in value must be escaped:\n%s", out)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if out := Markdown(nil); out != "" {
		t.Errorf("empty log should render empty markdown, got %q", out)
	}
}

func TestRenderHTML(t *testing.T) {
	events := []audit.Event{
		{Version: 1, Type: "t", Action: audit.ActionAdded, Key: "a", Value: "1"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, events, FormatHTML); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "<table>", "ADDED", "</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
