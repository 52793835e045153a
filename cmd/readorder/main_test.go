package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloJSON = `[
  {"text": "World", "boundingPolygon": [{"x": 60, "y": 0}, {"x": 110, "y": 0}, {"x": 110, "y": 20}, {"x": 60, "y": 20}]},
  {"text": "Hello", "boundingPolygon": [{"x": 0, "y": 0}, {"x": 50, "y": 0}, {"x": 50, "y": 20}, {"x": 0, "y": 20}]}
]`

const columnJSON = `[
  {"text": "本", "boundingPolygon": [{"x": 0, "y": 25}, {"x": 20, "y": 25}, {"x": 20, "y": 45}, {"x": 0, "y": 45}]},
  {"text": "日", "boundingPolygon": [{"x": 0, "y": 0}, {"x": 20, "y": 0}, {"x": 20, "y": 20}, {"x": 0, "y": 20}]}
]`

type cliEnv struct {
	dir        string
	configPath string
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	return &cliEnv{dir: base, configPath: filepath.Join(base, "absent.toml")}
}

func (e *cliEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, env *cliEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--log-level", "error"}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestRunPrintsText(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "page.json", helloJSON)

	out, err := runCLI(t, env, "run", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Hello World\n" {
		t.Fatalf("run output = %q", out)
	}
}

func TestRunMultipleFilesAddsHeaders(t *testing.T) {
	env := setupCLIEnv(t)
	a := env.write(t, "a.json", helloJSON)
	b := env.write(t, "b.json", helloJSON)

	out, err := runCLI(t, env, "run", a, b)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "===== a.json =====\nHello World\n")
	requireContains(t, out, "===== b.json =====\nHello World\n")
}

func TestRunJSON(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "page.json", helloJSON)

	out, err := runCLI(t, env, "run", "--json", path)
	if err != nil {
		t.Fatalf("run --json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if decoded["fullText"] != "Hello World" || decoded["direction"] != "horizontal" {
		t.Fatalf("unexpected result: %v", decoded)
	}
}

func TestRunLegacy(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "page.json", helloJSON)

	out, err := runCLI(t, env, "run", "--legacy", path)
	if err != nil {
		t.Fatalf("run --legacy: %v", err)
	}
	var decoded struct {
		Text   string            `json:"text"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Text != "Hello World" || len(decoded.Blocks) != 2 {
		t.Fatalf("unexpected legacy result: %+v", decoded)
	}

	// The conflict is reported before any input is read.
	missing := filepath.Join(env.dir, "missing.json")
	_, err = runCLI(t, env, "run", "--legacy", "--json", missing)
	if err == nil {
		t.Fatal("expected error for --legacy with --json")
	}
	if !strings.Contains(err.Error(), "none of the others can be") {
		t.Fatalf("expected flag conflict error, got %v", err)
	}
}

func TestRunDirectionFlag(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "column.json", columnJSON)

	out, err := runCLI(t, env, "--direction", "vertical", "run", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "日本\n" {
		t.Fatalf("run output = %q", out)
	}
}

func TestRunErrors(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "page.json", helloJSON)

	if _, err := runCLI(t, env, "run", filepath.Join(env.dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := runCLI(t, env, "--min-points", "0", "run", path); err == nil || !strings.Contains(err.Error(), "min_points") {
		t.Fatalf("expected min_points validation error, got %v", err)
	}
	if _, err := runCLI(t, env, "--direction", "diagonal", "run", path); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestBatchCommand(t *testing.T) {
	env := setupCLIEnv(t)
	env.write(t, "pages/001.json", helloJSON)
	env.write(t, "pages/002.json", helloJSON)

	out, err := runCLI(t, env, "batch", "--workers", "2", filepath.Join(env.dir, "pages"))
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "001.json")
	requireContains(t, out, "Results appended to")

	content, err := os.ReadFile(filepath.Join(env.dir, "pages_text.txt"))
	if err != nil {
		t.Fatalf("read batch output: %v", err)
	}
	requireContains(t, string(content), "===== 002.json =====\nHello World\n\n")
}

func TestBatchCommandReportsFailures(t *testing.T) {
	env := setupCLIEnv(t)
	env.write(t, "pages/001.json", helloJSON)
	env.write(t, "pages/002.json", "{broken")

	out, err := runCLI(t, env, "batch", filepath.Join(env.dir, "pages"))
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("expected failure summary error, got %v", err)
	}
	requireContains(t, out, "failed")
}

func TestBatchResumeRequiresJournalPath(t *testing.T) {
	env := setupCLIEnv(t)
	env.write(t, filepath.Base(env.configPath), "[journal]\npath = \"\"\n")
	env.write(t, "pages/001.json", helloJSON)

	_, err := runCLI(t, env, "batch", "--resume", filepath.Join(env.dir, "pages"))
	if err == nil || !strings.Contains(err.Error(), "batch.resume") {
		t.Fatalf("expected journal path error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(env.dir, "pages_text.txt")); !os.IsNotExist(statErr) {
		t.Errorf("no output should be written, stat error = %v", statErr)
	}
}

func TestInspectCommand(t *testing.T) {
	env := setupCLIEnv(t)
	path := env.write(t, "page.json", helloJSON)

	out, err := runCLI(t, env, "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Direction")
	requireContains(t, out, "horizontal")
	requireContains(t, out, "Hello World")
}

func TestConfigInitShowValidate(t *testing.T) {
	env := setupCLIEnv(t)
	target := filepath.Join(env.dir, "conf", "readorder.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config at %s: %v", target, err)
	}
	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}

	env.configPath = target
	out, err = runCLI(t, env, "--eps", "55", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[clustering]")
	requireContains(t, out, "epsilon = 55")

	out, err = runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, target)
	requireContains(t, out, "Configuration valid")
}
