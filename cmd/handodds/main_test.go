package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChanceCommand(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "-s", "6", "-l", "20", "-p", "2", "2", "3")
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "chance of 2 lands in a 6 card hand from a deck with 20 lands: 34.68%") {
		t.Fatalf("missing per-target line:\n%s", out)
	}
	if !strings.Contains(out, "chance of 2 or 3 lands in a 6 card hand from a deck with 20 lands: 57.18%") {
		t.Fatalf("missing combined line:\n%s", out)
	}
}

func TestChanceCommandAllSumsToOne(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "--no-history", "-l", "24", "all")
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "chance of 0, 1, 2, 3, 4, 5, 6, or 7 lands in a 7 card hand from a deck with 24 lands: 100.000%") {
		t.Fatalf("expected full partition to total 100%%:\n%s", out)
	}
}

func TestChanceCommandRequiresLands(t *testing.T) {
	setupEnv(t)
	if _, err := execute(t, "2"); err == nil || !strings.Contains(err.Error(), "--lands is required") {
		t.Fatalf("expected missing lands error, got %v", err)
	}
}

func TestChanceCommandRejectsBadInput(t *testing.T) {
	setupEnv(t)
	cases := [][]string{
		{"-l", "20", "8"},
		{"-l", "61", "2"},
		{"-l", "20", "-s", "61", "2"},
		{"-l", "20", "two"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestConfigFileSuppliesDefaults(t *testing.T) {
	dir := setupEnv(t)
	cfgDir := filepath.Join(dir, "config", "handodds")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := "[deck]\nsize = 40\nhand-size = 7\nlands = 17\n\n[output]\nhistory = false\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "3")
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "in a 7 card hand from a deck with 17 lands") {
		t.Fatalf("expected config values in output:\n%s", out)
	}
	out, err = execute(t, "-l", "16", "3")
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "from a deck with 16 lands") {
		t.Fatalf("expected flag to override config:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "handodds", "handodds.db")); !os.IsNotExist(err) {
		t.Fatalf("expected no history database, stat err: %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t)
	if _, err := execute(t, "-l", "24", "2-3"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	out, err := execute(t, "history", "-p", "1")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "2 or 3") {
		t.Fatalf("expected targets in history row: %q", lines[1])
	}

	out, err = execute(t, "history", "--clear")
	if err != nil {
		t.Fatalf("history --clear failed: %v", err)
	}
	if !strings.Contains(out, "Deleted 1 queries.") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestChartFlag(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "--no-history", "--chart", "-l", "24", "3")
	if err != nil {
		t.Fatalf("execute failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Distribution") {
		t.Fatalf("expected chart in output:\n%s", out)
	}
}

func TestWriteDefaultConfigIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handodds", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "[deck]") {
		t.Fatalf("unexpected template:\n%s", data)
	}
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("second writeDefaultConfig failed: %v", err)
	}
}

func TestHistoryCommandRejectsBadPrecision(t *testing.T) {
	setupEnv(t)
	for _, p := range []string{"-1", "21", "1000"} {
		if _, err := execute(t, "history", "-p", p); err == nil || !strings.Contains(err.Error(), "--precision") {
			t.Fatalf("expected precision error for %s, got %v", p, err)
		}
	}
}

func TestHistoryCommandUsesConfigPrecision(t *testing.T) {
	dir := setupEnv(t)
	cfgDir := filepath.Join(dir, "config", "handodds")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[output]\nprecision = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := execute(t, "-l", "24", "2-3"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "57.8%") || strings.Contains(out, "57.81") {
		t.Fatalf("expected config precision in history:\n%s", out)
	}

	out, err = execute(t, "history", "-p", "4")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "57.8119%") {
		t.Fatalf("expected flag to override config precision:\n%s", out)
	}
}
