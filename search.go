package distmeta

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SearchOption configures a search over a distribution path.
type SearchOption func(*searchConfig)

type searchConfig struct {
	logger *slog.Logger
}

// WithLogger sets a logger for search diagnostics (skipped directories,
// shadowed distributions). Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) SearchOption {
	return func(cfg *searchConfig) {
		cfg.logger = logger
	}
}

func newSearchConfig(opts []SearchOption) searchConfig {
	cfg := searchConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultPath returns the default search path: the PYTHONPATH environment
// variable split on the OS path-list separator, empty elements dropped.
func DefaultPath() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv("PYTHONPATH")) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// IterDistributions returns a lazy sweep over the installed distributions
// found in dirs, in path order. When dirs is empty, [DefaultPath] is used.
//
// Each directory is listed for immediate *.dist-info children. When two
// directories carry the same distribution (by normalized name), the one in
// the earlier directory wins and the later one is skipped silently, the
// same shadowing an import system would apply. The dedup state lives only
// inside the single sweep; separate calls start fresh.
//
// The sequence is single-pass: a handle construction error (e.g. an
// unparseable version in a directory name) is yielded once and ends the
// sweep.
func IterDistributions(dirs []string, opts ...SearchOption) iter.Seq2[*InstalledDistribution, error] {
	cfg := newSearchConfig(opts)

	return func(yield func(*InstalledDistribution, error) bool) {
		if len(dirs) == 0 {
			dirs = DefaultPath()
		}

		seen := make(map[string]struct{})

		for _, dir := range dirs {
			children, err := os.ReadDir(dir)
			if err != nil {
				// Missing or non-directory path entries are expected;
				// skip them like an import system would.
				cfg.logger.Debug("skipping unreadable search path entry",
					slog.String("dir", dir),
					slog.Any("error", err))
				continue
			}

			for _, child := range children {
				if !child.IsDir() || !strings.HasSuffix(child.Name(), ".dist-info") {
					continue
				}

				dist, err := NewDistribution(filepath.Join(dir, child.Name()))
				if err != nil {
					yield(nil, err)
					return
				}

				normalized := NormalizeName(dist.Name())
				if _, dup := seen[normalized]; dup {
					cfg.logger.Debug("skipping shadowed distribution",
						slog.String("name", dist.Name()),
						slog.String("dir", dir))
					continue
				}
				seen[normalized] = struct{}{}

				if !yield(dist, nil) {
					return
				}
			}
		}
	}
}

// GetDistribution resolves a single distribution by name, matching
// case- and separator-insensitively via [NormalizeName].
//
// Fails with [ErrDistributionNotFound] naming the request when the search
// path is exhausted without a match.
func GetDistribution(name string, dirs []string, opts ...SearchOption) (*InstalledDistribution, error) {
	want := NormalizeName(name)

	for dist, err := range IterDistributions(dirs, opts...) {
		if err != nil {
			return nil, err
		}
		if NormalizeName(dist.Name()) == want {
			return dist, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrDistributionNotFound, name)
}
