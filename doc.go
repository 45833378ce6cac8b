// Package distmeta inspects installed Python distributions without invoking
// any packaging tooling.
//
// A distribution is identified by its *.dist-info metadata directory, either
// unpacked inside a site-packages directory or still inside a wheel archive.
// Both forms expose the same read surface through the [Distribution]
// interface:
//   - Identity: name, version, location
//   - METADATA and WHEEL key/value files
//   - entry_points.txt groups
//   - The RECORD installed-file manifest with per-file hashes and sizes
//
// [IterDistributions] sweeps an ordered search path for unpacked
// distributions with first-directory-wins shadowing, and [GetDistribution]
// resolves a single distribution by normalized name. [OpenWheel] opens a
// wheel archive for the same inspection surface without unpacking it.
//
// The package never writes distribution metadata and never touches the
// network.
package distmeta
