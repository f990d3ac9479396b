package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codexmeter/codexmeter/internal/config"
	"github.com/codexmeter/codexmeter/internal/models"
	"github.com/codexmeter/codexmeter/internal/sessions"
)

func testConfig(base string) *config.Config {
	return &config.Config{
		SessionsPath:    base,
		RefreshInterval: 10 * time.Second,
	}
}

func testSnapshot(resetsInSeconds int64) *models.Snapshot {
	record := time.Now().UTC()
	return &models.Snapshot{
		SourceFile: "/tmp/rollout-a.jsonl",
		RecordTime: record,
		Total:      sessions.TokenUsage{InputTokens: 100, TotalTokens: 165},
		Last:       sessions.TokenUsage{InputTokens: 20, TotalTokens: 30},
		Primary: &models.RateWindow{
			RecordTime:      record,
			UsedPercent:     42.5,
			WindowMinutes:   299,
			ResetsInSeconds: resetsInSeconds,
		},
	}
}

func sized(m *Model, w, h int) *Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(*Model)
}

func TestViewTerminalTooSmall(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 50, 15)

	view := m.View()
	if !strings.Contains(view, "Terminal too small") {
		t.Errorf("undersized terminal should render the notice, got:\n%s", view)
	}
	if strings.Contains(view, "Codex Usage Monitor") {
		t.Error("undersized terminal must not render the panel")
	}
}

func TestViewBeforeFirstSize(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	if m.View() == "" {
		t.Error("View() before the first WindowSizeMsg should render a placeholder")
	}
}

func TestViewWithSnapshot(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 100, 30)
	m.applySnapshot(snapshotMsg{snapshot: testSnapshot(3600)})

	view := m.View()
	for _, want := range []string{
		"Codex Usage Monitor",
		"5h limit",
		"Time",
		"Used",
		"42.5%",
		"resets at",
		"total: input 100",
		"Last update",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Weekly limit") {
		t.Error("absent secondary window should not render")
	}
}

func TestViewOutdatedWindow(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 100, 30)
	m.applySnapshot(snapshotMsg{snapshot: testSnapshot(-10)})
	m.now = time.Now()

	view := m.View()
	if !strings.Contains(view, "[OUTDATED]") {
		t.Errorf("stale window should be flagged:\n%s", view)
	}
}

func TestViewNoData(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 100, 30)
	m.applySnapshot(snapshotMsg{err: sessions.ErrNoRecords})

	view := m.View()
	if !strings.Contains(view, "No token_count events found") {
		t.Errorf("empty result should render the no-data message:\n%s", view)
	}
}

func TestTransientErrorKeepsSnapshot(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 100, 30)
	m.applySnapshot(snapshotMsg{snapshot: testSnapshot(3600)})
	m.applySnapshot(snapshotMsg{err: fmt.Errorf("disk unhappy")})

	if m.snapshot == nil {
		t.Fatal("transient refresh failure should keep the previous snapshot")
	}
	view := m.View()
	if !strings.Contains(view, "refresh failed") {
		t.Errorf("transient failure should be surfaced:\n%s", view)
	}
	if !strings.Contains(view, "42.5%") {
		t.Errorf("previous data should still render:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		m := New(testConfig(t.TempDir()), nil, nil)
		var msg tea.KeyMsg
		switch k {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}

		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %s should produce a quit command", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %s produced %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestRefreshTickReschedules(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	_, cmd := m.Update(refreshTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("refresh tick should schedule work")
	}
}

func TestClockTickUpdatesNow(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	_, cmd := m.Update(clockTickMsg(at))
	if !m.now.Equal(at) {
		t.Errorf("now = %v, want %v", m.now, at)
	}
	if cmd == nil {
		t.Error("clock tick should reschedule itself")
	}
}

func TestRefreshCmdPipeline(t *testing.T) {
	base := t.TempDir()
	now := time.Now()
	dir := filepath.Join(base,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	line := fmt.Sprintf(`{"type":"event_msg","timestamp":%q,"payload":{"type":"token_count",`+
		`"info":{"total_token_usage":{"total_tokens":165},"last_token_usage":{"total_tokens":30}},`+
		`"rate_limits":{"primary":{"used_percent":42.5,"resets_in_seconds":3600,"window_minutes":299}}}}`,
		now.UTC().Format(time.RFC3339))
	if err := os.WriteFile(filepath.Join(dir, "rollout-a.jsonl"), []byte(line+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(testConfig(base), nil, nil)
	msg := m.refreshCmd()()
	snapMsg, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("refreshCmd produced %T", msg)
	}
	if snapMsg.err != nil {
		t.Fatalf("pipeline failed: %v", snapMsg.err)
	}
	if snapMsg.snapshot.Primary == nil || snapMsg.snapshot.Primary.UsedPercent != 42.5 {
		t.Error("pipeline lost the primary window")
	}
}

func TestTrendBounded(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	for i := 0; i < maxTrendPoints+50; i++ {
		snap := testSnapshot(3600)
		snap.SourceFile = "" // keep watcher logic out of it
		m.applySnapshot(snapshotMsg{snapshot: snap})
	}
	if len(m.trend) != maxTrendPoints {
		t.Errorf("trend length = %d, want cap %d", len(m.trend), maxTrendPoints)
	}
}

func TestPanelRowsExactInteriorWidth(t *testing.T) {
	m := New(testConfig(t.TempDir()), nil, nil)
	m = sized(m, 100, 30)
	m.applySnapshot(snapshotMsg{snapshot: testSnapshot(3600)})

	for i, row := range m.bodyRows() {
		if w := displayWidth(row); w != m.layout.Interior {
			t.Errorf("body row %d width = %d, want %d", i, w, m.layout.Interior)
		}
	}
}

// displayWidth strips ANSI escapes before measuring.
func displayWidth(s string) int {
	inEscape := false
	w := 0
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			w++
		}
	}
	return w
}
