package distmeta

import (
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/opencontainers/go-digest"
)

// RecordEntry is a single line of a distribution's RECORD file: an installed
// file's path relative to the site-packages directory, with an optional
// content hash and size.
//
// An entry stays bound to the distribution that produced it so the file's
// bytes can be fetched on demand. The binding is severable: [RecordEntry.Detach]
// clears it, after which reads fail with [ErrDetached].
type RecordEntry struct {
	path    string
	alg     digest.Algorithm
	sum     []byte
	size    int64
	hasSize bool
	owner   Distribution
}

// Path returns the file path relative to the site-packages directory,
// forward-slash separated.
func (e *RecordEntry) Path() string {
	return e.path
}

// Algorithm returns the recorded hash algorithm.
// ok is false when the entry carries no hash (the RECORD self-entry).
func (e *RecordEntry) Algorithm() (digest.Algorithm, bool) {
	return e.alg, len(e.sum) > 0
}

// RawHash returns the decoded hash bytes.
// The returned slice must be treated as immutable.
// ok is false when the entry carries no hash.
func (e *RecordEntry) RawHash() ([]byte, bool) {
	return e.sum, len(e.sum) > 0
}

// Hash returns the recorded hash as a digest.
// ok is false when the entry carries no hash.
func (e *RecordEntry) Hash() (digest.Digest, bool) {
	if len(e.sum) == 0 {
		return "", false
	}
	return digest.NewDigestFromBytes(e.alg, e.sum), true
}

// Size returns the recorded file size in bytes.
// ok is false when the entry carries no size.
func (e *RecordEntry) Size() (int64, bool) {
	return e.size, e.hasSize
}

// Owner returns the distribution the entry is bound to, or nil when
// detached.
func (e *RecordEntry) Owner() Distribution {
	return e.owner
}

// Detach unbinds the entry from its distribution. Use this when the entry
// must outlive the handle that produced it (e.g. a wheel about to be
// closed); subsequent reads fail with [ErrDetached] instead of touching a
// released archive.
func (e *RecordEntry) Detach() {
	e.owner = nil
}

// open returns a reader over the installed file's content, routed through
// the owning distribution's storage backend.
func (e *RecordEntry) open() (io.ReadCloser, error) {
	switch owner := e.owner.(type) {
	case nil:
		return nil, fmt.Errorf("%w: %s", ErrDetached, e.path)
	case *WheelDistribution:
		// RECORD paths inside a wheel are archive member paths as-is.
		return owner.openMember(e.path)
	default:
		// Loose distributions (and any custom form rooted on the file
		// system) resolve relative to the dist-info directory's parent.
		root := filepath.Dir(owner.Path())
		return os.Open(filepath.Join(root, filepath.FromSlash(e.path)))
	}
}

// ReadBytes reads the installed file's content.
//
// Fails with [ErrDetached] when the entry has been detached from its
// distribution, and with [ErrClosed] when the owning wheel has been closed.
func (e *RecordEntry) ReadBytes() ([]byte, error) {
	r, err := e.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Verify streams the installed file's content and checks it against the
// recorded hash and size.
//
// Entries without a hash (the RECORD self-entry) verify trivially. Returns
// [ErrHashMismatch] or [ErrSizeMismatch] on disagreement.
func (e *RecordEntry) Verify() error {
	dgst, ok := e.Hash()
	if !ok {
		return nil
	}
	if !e.alg.Available() {
		return fmt.Errorf("distmeta: unsupported hash algorithm %q for %s", e.alg, e.path)
	}

	r, err := e.open()
	if err != nil {
		return err
	}
	defer r.Close()

	verifier := dgst.Verifier()
	n, err := io.Copy(verifier, r)
	if err != nil {
		return fmt.Errorf("read %s: %w", e.path, err)
	}
	if e.hasSize && n != e.size {
		return fmt.Errorf("%w: %s: recorded %d bytes, read %d", ErrSizeMismatch, e.path, e.size, n)
	}
	if !verifier.Verified() {
		return fmt.Errorf("%w: %s", ErrHashMismatch, e.path)
	}
	return nil
}

// Record is the parsed RECORD manifest, in file order.
type Record []*RecordEntry

// Find returns the entry for the given relative path, or nil.
func (r Record) Find(path string) *RecordEntry {
	for _, e := range r {
		if e.path == path {
			return e
		}
	}
	return nil
}

// Verify checks every entry against its recorded hash and size, stopping at
// the first mismatch.
func (r Record) Verify() error {
	for _, e := range r {
		if err := e.Verify(); err != nil {
			return err
		}
	}
	return nil
}

// parseRecord parses RECORD text into entries bound to owner.
//
// Each non-empty physical line is one CSV record with exactly three fields:
// path, "algorithm=digest" (URL-safe base64, unpadded), and size. The hash
// and size fields may be empty. Any malformed line fails the whole parse
// with ErrRecordParse naming the 1-based line number and raw content.
func parseRecord(text string, owner Distribution) (Record, error) {
	var rec Record

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		entry, err := parseRecordLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d %q: %v", ErrRecordParse, i+1, line, err)
		}
		entry.owner = owner
		rec = append(rec, entry)
	}

	return rec, nil
}

func parseRecordLine(line string) (*RecordEntry, error) {
	// Parse per line rather than over the whole text so quoted paths are
	// honored while errors can still cite the exact raw line.
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = 3
	fields, err := cr.Read()
	if err != nil {
		return nil, err
	}

	if fields[0] == "" {
		return nil, errors.New("empty path")
	}
	entry := &RecordEntry{path: fields[0]}

	if fields[1] != "" {
		alg, encoded, ok := strings.Cut(fields[1], "=")
		if !ok {
			return nil, fmt.Errorf("hash field %q missing algorithm separator", fields[1])
		}
		sum, err := decodeRecordDigest(encoded)
		if err != nil {
			return nil, fmt.Errorf("hash field %q: %w", fields[1], err)
		}
		entry.alg = digest.Algorithm(alg)
		entry.sum = sum
	}

	if fields[2] != "" {
		size, err := strconv.ParseUint(fields[2], 10, 63)
		if err != nil {
			return nil, fmt.Errorf("size field %q: not a non-negative integer", fields[2])
		}
		entry.size = int64(size)
		entry.hasSize = true
	}

	return entry, nil
}

// decodeRecordDigest decodes a RECORD digest: URL-safe base64 stored
// without padding, so padding is restored before decoding.
func decodeRecordDigest(encoded string) ([]byte, error) {
	if n := len(encoded) % 4; n != 0 {
		encoded += strings.Repeat("=", 4-n)
	}
	return base64.URLEncoding.DecodeString(encoded)
}
