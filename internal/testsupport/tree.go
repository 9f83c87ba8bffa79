package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree materializes an archive fixture under root. Each entry maps a
// slash-separated relative path to file contents; entries ending in "/"
// create empty directories.
func WriteTree(t testing.TB, root string, entries map[string]string) {
	t.Helper()

	for rel, contents := range entries {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if len(rel) > 0 && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// SampleArchive writes a small canonical archive and returns its root. The
// layout exercises the calibration exclusion, multi-edge molecules, and
// non-measurement files.
func SampleArchive(t testing.TB) string {
	t.Helper()

	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"PTCDA/carbon/45deg_scan.txt":       "data",
		"PTCDA/carbon/90deg_scan.txt":       "data",
		"PTCDA/carbon/notes.md":             "not a measurement",
		"PTCDA/nitrogen/30deg_scan.txt":     "data",
		"ZnPc/oxygen/5deg.txt":              "data",
		"Energy Calibration/carbon/ref.txt": "reference",
	})
	return root
}
