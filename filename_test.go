package distmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWheelFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantName    string
		wantVersion string
	}{
		{"minimal", "foo-1.0-py3-none-any.whl", "foo", "1.0"},
		{"build tag", "foo-1.0-1-py3-none-any.whl", "foo", "1.0"},
		{"dotted name", "sphinxcontrib.applehelp-1.0.2-py2.py3-none-any.whl", "sphinxcontrib.applehelp", "1.0.2"},
		{"underscore name", "domdf_python_tools-2.9.1-py3-none-any.whl", "domdf_python_tools", "2.9.1"},
		{"mixed case preserved", "Babel-2.9.1-py2.py3-none-any.whl", "Babel", "2.9.1"},
		{"platform tag with underscores", "greenlet-1.1.0-cp39-cp39-manylinux2010_x86_64.whl", "greenlet", "1.1.0"},
		{"full path", "/tmp/wheels/foo-1.0-py3-none-any.whl", "foo", "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ver, err := ParseWheelFilename(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantVersion, ver.Original())
		})
	}
}

func TestParseWheelFilenameInvalid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"wrong extension", "foo-1.0-py3-none-any.zip"},
		{"no extension", "foo-1.0-py3-none-any"},
		{"too few parts", "foo-1.0-py3.whl"},
		{"too many parts", "foo-1.0-1-2-py3-none-any.whl"},
		{"double underscore in name", "foo__bar-1.0-py3-none-any.whl"},
		{"illegal character in name", "foo!-1.0-py3-none-any.whl"},
		{"empty", ".whl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseWheelFilename(tt.filename)
			require.ErrorIs(t, err, ErrInvalidName)
			// The offending input is always named in the message.
			assert.ErrorContains(t, err, tt.filename)
		})
	}
}

func TestParseWheelFilenameBadVersion(t *testing.T) {
	// A malformed version is the version parser's failure, not a filename
	// grammar failure.
	_, _, err := ParseWheelFilename("foo-notaversion-py3-none-any.whl")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidName)
}

func TestParseWheelFilenameDiscardsTags(t *testing.T) {
	name, ver, err := ParseWheelFilename("foo-1.0-3-cp39-abi3-manylinux1_x86_64.whl")
	require.NoError(t, err)
	assert.Equal(t, "foo", name)
	assert.Equal(t, "1.0", ver.Original())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "requests", "requests"},
		{"uppercase", "Babel", "babel"},
		{"dots", "sphinxcontrib.applehelp", "sphinxcontrib-applehelp"},
		{"underscores", "sphinxcontrib_applehelp", "sphinxcontrib-applehelp"},
		{"mixed runs", "Foo..--__Bar", "foo-bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}
