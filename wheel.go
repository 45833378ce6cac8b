package distmeta

import (
	"archive/zip"
	"fmt"
	"io"
	"path"

	version "github.com/hashicorp/go-version"
	"github.com/klauspost/compress/flate"

	"github.com/meigma/distmeta/metadata"
)

// WheelDistribution is a distribution still packed inside a wheel archive.
//
// The dist-info directory is a virtual path inside the archive, derived
// from the parsed filename. The zip handle is exclusively owned: Close
// releases it exactly once, and any use after Close (including a second
// Close) fails with [ErrClosed] rather than reopening the archive.
type WheelDistribution struct {
	name    string
	version *version.Version
	path    string

	zr      *zip.ReadCloser // nil once closed
	members map[string]*zip.File
}

// OpenWheel opens a wheel archive for inspection.
//
// The filename is parsed with [ParseWheelFilename] before the archive is
// touched, so a malformed name fails without opening anything. The caller
// owns the returned handle and must Close it.
func OpenWheel(filename string) (*WheelDistribution, error) {
	name, ver, err := ParseWheelFilename(filename)
	if err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open wheel archive: %w", err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	members := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		members[f.Name] = f
	}

	return &WheelDistribution{
		name:    name,
		version: ver,
		path:    filename,
		zr:      zr,
		members: members,
	}, nil
}

// Close releases the underlying archive handle.
// A second Close fails with [ErrClosed].
func (w *WheelDistribution) Close() error {
	if w.zr == nil {
		return fmt.Errorf("%w: %s", ErrClosed, w.path)
	}
	err := w.zr.Close()
	w.zr = nil
	w.members = nil
	return err
}

// Name returns the distribution name as declared, unnormalized.
func (w *WheelDistribution) Name() string { return w.name }

// Version returns the distribution version.
func (w *WheelDistribution) Version() *version.Version { return w.version }

// Path returns the path to the .whl file.
func (w *WheelDistribution) Path() string { return w.path }

// distInfo returns the virtual dist-info directory inside the archive.
// Original preserves the version exactly as spelled in the filename, which
// is what the archive member paths use.
func (w *WheelDistribution) distInfo() string {
	return w.name + "-" + w.version.Original() + ".dist-info"
}

// openMember opens an archive member by its full forward-slash path.
func (w *WheelDistribution) openMember(name string) (io.ReadCloser, error) {
	if w.zr == nil {
		return nil, fmt.Errorf("%w: %s", ErrClosed, w.path)
	}
	f, ok := w.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrFileNotFound, name, w.path)
	}
	return f.Open()
}

// readMember reads an archive member by its full forward-slash path.
func (w *WheelDistribution) readMember(name string) ([]byte, error) {
	r, err := w.openMember(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// ReadFile reads a file from the virtual dist-info directory.
func (w *WheelDistribution) ReadFile(name string) (string, error) {
	data, err := w.readMember(path.Join(w.distInfo(), name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HasFile reports whether the virtual dist-info directory contains the
// file. Returns false on a closed handle; it never fails.
func (w *WheelDistribution) HasFile(name string) bool {
	if w.zr == nil {
		return false
	}
	_, ok := w.members[path.Join(w.distInfo(), name)]
	return ok
}

// Metadata parses the METADATA file.
func (w *WheelDistribution) Metadata() (metadata.Fields, error) {
	return metadataOf(w)
}

// EntryPoints parses entry_points.txt, yielding an empty mapping when the
// file is absent.
func (w *WheelDistribution) EntryPoints() (map[string]map[string]string, error) {
	// Checked before HasFile so a closed handle fails instead of looking
	// like a wheel without entry points.
	if w.zr == nil {
		return nil, fmt.Errorf("%w: %s", ErrClosed, w.path)
	}
	return entryPointsOf(w)
}

// Wheel parses the WHEEL build descriptor.
//
// Unlike the loose form, the file is required here: only wheel-built
// archives reach this handle, so its absence fails with [ErrFileNotFound].
func (w *WheelDistribution) Wheel() (metadata.Fields, error) {
	text, err := w.ReadFile("WHEEL")
	if err != nil {
		return nil, err
	}
	return metadata.Parse(text)
}

// Record parses the RECORD manifest, or returns (nil, nil) when the file is
// absent. Every entry is bound to w; detach entries that must outlive the
// handle.
func (w *WheelDistribution) Record() (Record, error) {
	// Checked before HasFile so a closed handle fails instead of looking
	// like a wheel without a RECORD.
	if w.zr == nil {
		return nil, fmt.Errorf("%w: %s", ErrClosed, w.path)
	}
	if !w.HasFile("RECORD") {
		return nil, nil
	}
	text, err := w.ReadFile("RECORD")
	if err != nil {
		return nil, err
	}
	return parseRecord(text, w)
}

// String implements fmt.Stringer.
func (w *WheelDistribution) String() string {
	return fmt.Sprintf("<WheelDistribution(%q, %q)>", w.name, w.version.Original())
}

// Interface compliance.
var (
	_ Distribution = (*WheelDistribution)(nil)
	_ io.Closer    = (*WheelDistribution)(nil)
)
