package distmeta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/meigma/distmeta/entrypoints"
	"github.com/meigma/distmeta/metadata"
)

// Distribution is the read surface shared by every physical form of an
// installed distribution.
//
// Name and version are fixed at construction. ReadFile and HasFile address
// files inside the distribution's *.dist-info directory, real or virtual.
// Additional forms (remote, cached, ...) can be added by implementing this
// interface.
type Distribution interface {
	// Name returns the distribution name as declared, unnormalized.
	Name() string

	// Version returns the distribution version.
	Version() *version.Version

	// Path returns the location of the distribution: the dist-info
	// directory for the loose form, the archive file for the wheel form.
	Path() string

	// ReadFile reads a file from the dist-info directory.
	// Fails with ErrFileNotFound when the file is absent.
	ReadFile(name string) (string, error)

	// HasFile reports whether the dist-info directory contains the file.
	// It never fails.
	HasFile(name string) bool

	// Metadata parses the METADATA file. The file is required.
	Metadata() (metadata.Fields, error)

	// EntryPoints parses entry_points.txt. An absent file yields an empty
	// mapping, not an error.
	EntryPoints() (map[string]map[string]string, error)

	// Wheel parses the WHEEL build descriptor. The loose form returns
	// (nil, nil) when the file is absent; the wheel form requires it.
	Wheel() (metadata.Fields, error)

	// Record parses the RECORD installed-file manifest, binding every
	// entry to the receiver. Returns (nil, nil) when RECORD is absent.
	Record() (Record, error)
}

// InstalledDistribution is a distribution unpacked into a site-packages
// directory. All reads are plain file reads relative to the dist-info
// directory.
type InstalledDistribution struct {
	name    string
	version *version.Version
	path    string
}

// NewDistribution constructs an InstalledDistribution from the path of its
// *.dist-info directory.
//
// The directory name is "{name}-{version}.dist-info" and is split on the
// first dash only. Installers write these names from already-validated
// fields, so no further name validation is performed here, unlike the wheel
// filename grammar.
func NewDistribution(path string) (*InstalledDistribution, error) {
	stem := strings.TrimSuffix(filepath.Base(path), ".dist-info")
	name, verStr, ok := strings.Cut(stem, "-")
	if !ok {
		return nil, fmt.Errorf("distmeta: invalid dist-info directory name: %s", filepath.Base(path))
	}

	ver, err := version.NewVersion(verStr)
	if err != nil {
		return nil, err
	}

	return &InstalledDistribution{name: name, version: ver, path: path}, nil
}

// Name returns the distribution name as declared, unnormalized.
func (d *InstalledDistribution) Name() string { return d.name }

// Version returns the distribution version.
func (d *InstalledDistribution) Version() *version.Version { return d.version }

// Path returns the path to the dist-info directory.
func (d *InstalledDistribution) Path() string { return d.path }

// ReadFile reads a file from the dist-info directory.
func (d *InstalledDistribution) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Join(d.path, name))
		}
		return "", err
	}
	return string(data), nil
}

// HasFile reports whether the dist-info directory contains a regular file
// with the given name.
func (d *InstalledDistribution) HasFile(name string) bool {
	info, err := os.Stat(filepath.Join(d.path, name))
	return err == nil && info.Mode().IsRegular()
}

// Metadata parses the METADATA file.
func (d *InstalledDistribution) Metadata() (metadata.Fields, error) {
	return metadataOf(d)
}

// EntryPoints parses entry_points.txt, yielding an empty mapping when the
// file is absent.
func (d *InstalledDistribution) EntryPoints() (map[string]map[string]string, error) {
	return entryPointsOf(d)
}

// Wheel parses the WHEEL file, or returns (nil, nil) when the distribution
// was not installed from a wheel.
func (d *InstalledDistribution) Wheel() (metadata.Fields, error) {
	if !d.HasFile("WHEEL") {
		return nil, nil
	}
	text, err := d.ReadFile("WHEEL")
	if err != nil {
		return nil, err
	}
	return metadata.Parse(text)
}

// Record parses the RECORD manifest, or returns (nil, nil) when the file is
// absent. Every entry is bound to d for on-demand reads.
func (d *InstalledDistribution) Record() (Record, error) {
	if !d.HasFile("RECORD") {
		return nil, nil
	}
	text, err := d.ReadFile("RECORD")
	if err != nil {
		return nil, err
	}
	return parseRecord(text, d)
}

// String implements fmt.Stringer.
func (d *InstalledDistribution) String() string {
	return fmt.Sprintf("<InstalledDistribution(%q, %q)>", d.name, d.version.Original())
}

// metadataOf parses the required METADATA file of any distribution form.
func metadataOf(d Distribution) (metadata.Fields, error) {
	text, err := d.ReadFile("METADATA")
	if err != nil {
		return nil, err
	}
	return metadata.Parse(text)
}

// entryPointsOf parses entry_points.txt of any distribution form, mapping
// an absent file to an empty group mapping.
func entryPointsOf(d Distribution) (map[string]map[string]string, error) {
	if !d.HasFile("entry_points.txt") {
		return map[string]map[string]string{}, nil
	}
	text, err := d.ReadFile("entry_points.txt")
	if err != nil {
		return nil, err
	}
	return entrypoints.Parse(text)
}

// Interface compliance.
var _ Distribution = (*InstalledDistribution)(nil)
