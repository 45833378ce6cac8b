package distmeta

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const demoMetadata = `Metadata-Version: 2.1
Name: demo
Version: 1.0
Summary: A demonstration distribution
`

const demoWheel = `Wheel-Version: 1.0
Generator: bdist_wheel (0.36.2)
Root-Is-Purelib: true
Tag: py3-none-any
`

const demoEntryPoints = `[console_scripts]
demo = demo.cli:main
`

const demoPayload = "def main():\n    print(\"demo\")\n"

// writeDistInfo creates a {nameVer}.dist-info directory under siteDir with
// the given files.
func writeDistInfo(t *testing.T, siteDir, nameVer string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(siteDir, nameVer+".dist-info")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// installDemo unpacks a small but complete demo distribution into siteDir,
// payload and RECORD included, and returns the dist-info directory.
func installDemo(t *testing.T, siteDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(siteDir, "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "demo", "cli.py"), []byte(demoPayload), 0o644))

	record := strings.Join([]string{
		recordLine("demo/cli.py", []byte(demoPayload)),
		recordLine("demo-1.0.dist-info/METADATA", []byte(demoMetadata)),
		recordLine("demo-1.0.dist-info/WHEEL", []byte(demoWheel)),
		recordLine("demo-1.0.dist-info/entry_points.txt", []byte(demoEntryPoints)),
		"demo-1.0.dist-info/RECORD,,",
		"",
	}, "\n")

	return writeDistInfo(t, siteDir, "demo-1.0", map[string]string{
		"METADATA":         demoMetadata,
		"WHEEL":            demoWheel,
		"entry_points.txt": demoEntryPoints,
		"RECORD":           record,
	})
}

// buildWheel writes a wheel archive with the given members and returns its
// path. Member paths are archive-root relative, forward-slash separated.
func buildWheel(t *testing.T, dir, filename string, members map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// buildDemoWheel writes a complete demo wheel (payload, metadata, RECORD
// with real hashes) and returns its path.
func buildDemoWheel(t *testing.T, dir string) string {
	t.Helper()

	record := strings.Join([]string{
		recordLine("demo/cli.py", []byte(demoPayload)),
		recordLine("demo-1.0.dist-info/METADATA", []byte(demoMetadata)),
		recordLine("demo-1.0.dist-info/WHEEL", []byte(demoWheel)),
		recordLine("demo-1.0.dist-info/entry_points.txt", []byte(demoEntryPoints)),
		"demo-1.0.dist-info/RECORD,,",
		"",
	}, "\n")

	return buildWheel(t, dir, "demo-1.0-py3-none-any.whl", map[string]string{
		"demo/cli.py":                         demoPayload,
		"demo-1.0.dist-info/METADATA":         demoMetadata,
		"demo-1.0.dist-info/WHEEL":            demoWheel,
		"demo-1.0.dist-info/entry_points.txt": demoEntryPoints,
		"demo-1.0.dist-info/RECORD":           record,
	})
}
