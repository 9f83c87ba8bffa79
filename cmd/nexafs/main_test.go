package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nexafs/internal/config"
	"nexafs/internal/runlock"
	"nexafs/internal/scan"
	"nexafs/internal/testsupport"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NEXAFS_DATA_DIR", "")
}

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanCommandEmitsLoadingLines(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "scan", root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "Loading data for PTCDA at the C-K at 45 degrees") {
		t.Fatalf("loading line missing:\n%s", out)
	}
	if strings.Contains(out, "N-K") {
		t.Fatalf("second edge processed in single-edge mode:\n%s", out)
	}
	if strings.Contains(out, "Energy Calibration") {
		t.Fatalf("calibration directory not excluded:\n%s", out)
	}
	if !strings.Contains(out, "Molecule") {
		t.Fatalf("summary table missing:\n%s", out)
	}
	if !strings.Contains(out, "--all-edges") {
		t.Fatalf("skipped-edge note missing:\n%s", out)
	}
}

func TestScanCommandAllEdges(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "scan", "--all-edges", root)
	if err != nil {
		t.Fatalf("scan --all-edges: %v", err)
	}
	if !strings.Contains(out, "Loading data for PTCDA at the N-K at 30 degrees") {
		t.Fatalf("second edge not processed:\n%s", out)
	}
	if strings.Contains(out, "--all-edges to process them") {
		t.Fatalf("unexpected skip note:\n%s", out)
	}
}

func TestScanCommandJSON(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "scan", "--json", "--all-edges", root)
	if err != nil {
		t.Fatalf("scan --json: %v", err)
	}

	var result scan.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(result.Molecules) != 2 {
		t.Fatalf("expected 2 molecules, got %d", len(result.Molecules))
	}
	if result.Measurements() != 4 {
		t.Fatalf("expected 4 measurements, got %d", result.Measurements())
	}
}

func TestScanCommandQuiet(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "scan", "--quiet", root)
	if err != nil {
		t.Fatalf("scan --quiet: %v", err)
	}
	if strings.Contains(out, "Loading data for") {
		t.Fatalf("per-measurement lines not suppressed:\n%s", out)
	}
	if !strings.Contains(out, "Molecule") {
		t.Fatalf("summary table missing:\n%s", out)
	}
}

func TestScanCommandLeavesNoArtifacts(t *testing.T) {
	isolateEnv(t)
	home := os.Getenv("HOME")
	root := testsupport.SampleArchive(t)
	cfg := testsupport.NewConfig(t, testsupport.WithoutLogDir())
	cfg.Paths.DataDir = root
	configPath := writeConfig(t, cfg)

	if _, err := runCLI(t, "--config", configPath, "scan"); err != nil {
		t.Fatalf("scan: %v", err)
	}

	err := filepath.WalkDir(home, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			t.Fatalf("scan without a log dir created %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk home: %v", err)
	}
	for _, name := range []string{"nexafs.log", "nexafs.lock"} {
		if _, err := os.Stat(filepath.Join(root, name)); !os.IsNotExist(err) {
			t.Fatalf("scan left %s in the archive", name)
		}
	}
}

func TestScanCommandWithLogDirWritesLogAndReleasesLock(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)
	cfg := testsupport.NewConfig(t, testsupport.WithAllEdges())
	cfg.Paths.DataDir = root
	configPath := writeConfig(t, cfg)

	out, err := runCLI(t, "--config", configPath, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "Loading data for PTCDA at the N-K at 30 degrees") {
		t.Fatalf("all_edges config not honoured:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "nexafs.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"starting scan", "all_edges=true", "scan complete"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log file missing %q:\n%s", want, data)
		}
	}

	// The lock must be free again once the run finishes.
	lock := runlock.New(cfg.Paths.LogDir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("lock still held after scan: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestScanCommandMissingRoot(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "scan", filepath.Join(t.TempDir(), "absent"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-root error, got %v", err)
	}
}

func TestScanCommandNoRootConfigured(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "scan")
	if err == nil || !strings.Contains(err.Error(), "no archive root") {
		t.Fatalf("expected no-root error, got %v", err)
	}
}

func TestMoleculesCommand(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "molecules", root)
	if err != nil {
		t.Fatalf("molecules: %v", err)
	}
	for _, want := range []string{"PTCDA", "ZnPc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("molecule %q missing:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Energy Calibration") {
		t.Fatalf("calibration directory listed:\n%s", out)
	}
}

func TestShowCommand(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	out, err := runCLI(t, "show", "PTCDA", root)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"C-K", "N-K", "45deg_scan.txt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from show output:\n%s", want, out)
		}
	}
}

func TestShowCommandUnknownMolecule(t *testing.T) {
	isolateEnv(t)
	root := testsupport.SampleArchive(t)

	_, err := runCLI(t, "show", "Unobtainium", root)
	if err == nil || !strings.Contains(err.Error(), "Unobtainium") {
		t.Fatalf("expected unknown-molecule error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected init output:\n%s", out)
	}

	out, err = runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}
}

func TestConfigShow(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"Data dir:", "Extension:", ".txt", "Energy Calibration"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from config show:\n%s", want, out)
		}
	}
}
