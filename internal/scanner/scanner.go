// Package scanner discovers component descriptors by walking manifest
// directory trees.
//
// The scanner is the runtime half of discovery: it recursively walks each
// configured root for .hcl manifest files, loads the component blocks they
// declare, and keeps only descriptors whose constructor symbol is actually
// compiled into the catalog. It is purely read-only; its only side effects
// are log lines.
package scanner

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/ctxlog"
	"github.com/weavekit/weavekit/internal/fsutil"
	"github.com/weavekit/weavekit/internal/manifest"
	"github.com/weavekit/weavekit/internal/marker"
)

// manifestExtension is the file suffix the scanner recognizes.
const manifestExtension = ".hcl"

// Scanner walks manifest roots and resolves descriptors against a catalog.
type Scanner struct {
	catalog *catalog.Catalog
	loader  *manifest.Loader
	roots   []string
}

// New creates a Scanner over the given manifest roots.
func New(cat *catalog.Catalog, roots ...string) *Scanner {
	return &Scanner{
		catalog: cat,
		loader:  manifest.NewLoader(),
		roots:   roots,
	}
}

// Scan walks every root and returns the descriptors of all loadable
// components, sorted by source path and type label so repeated scans of the
// same tree are identical.
//
// Per-entry problems never abort the scan: a missing root contributes
// nothing beyond a warning, an unparseable file is skipped with a warning,
// and a descriptor whose constructor is not compiled in is skipped — silently
// when the component is marked optional, with a warning otherwise. Only an
// I/O failure while walking an existing root is returned as an error.
func (s *Scanner) Scan(ctx context.Context) ([]*manifest.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	var descriptors []*manifest.Descriptor
	for _, root := range s.roots {
		if _, err := os.Stat(root); err != nil {
			logger.Warn("Manifest root not found, skipping.", "root", root, "error", err)
			continue
		}

		files, err := fsutil.FindFilesByExtension(root, manifestExtension)
		if err != nil {
			return nil, fmt.Errorf("failed to walk manifest root %s: %w", root, err)
		}

		for _, path := range files {
			loaded, err := s.loader.LoadFile(ctx, path)
			if err != nil {
				logger.Warn("Skipping unloadable manifest file.", "file", path, "error", err)
				continue
			}
			descriptors = append(descriptors, s.resolve(ctx, loaded)...)
		}
	}

	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].Source != descriptors[j].Source {
			return descriptors[i].Source < descriptors[j].Source
		}
		return descriptors[i].TypeLabel < descriptors[j].TypeLabel
	})

	logger.Debug("Scan complete.", "roots", len(s.roots), "descriptors", len(descriptors))
	return descriptors, nil
}

// resolve filters loaded descriptors down to those whose constructor symbol
// is present in the catalog.
func (s *Scanner) resolve(ctx context.Context, loaded []*manifest.Descriptor) []*manifest.Descriptor {
	logger := ctxlog.FromContext(ctx)

	kept := loaded[:0]
	for _, desc := range loaded {
		if _, ok := s.catalog.Constructor(desc.Constructor); !ok {
			if desc.Optional {
				// Optional components may reference constructors that were
				// never compiled in; their absence is expected.
				logger.Debug("Skipping optional component with no compiled constructor.",
					"type", desc.TypeLabel, "constructor", desc.Constructor, "file", desc.Source)
			} else {
				logger.Warn("Skipping component with no compiled constructor.",
					"type", desc.TypeLabel, "constructor", desc.Constructor, "file", desc.Source)
			}
			continue
		}
		kept = append(kept, desc)
	}
	return kept
}

// ScanForMarker returns the descriptors whose marker matches kind directly
// or derives from it (one meta level).
func (s *Scanner) ScanForMarker(ctx context.Context, kind marker.Kind) ([]*manifest.Descriptor, error) {
	all, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*manifest.Descriptor
	for _, desc := range all {
		if desc.Marker.Is(kind) {
			matched = append(matched, desc)
		}
	}
	return matched, nil
}

// ScanProviders buckets provider descriptors by category over the fixed
// provider marker list.
func (s *Scanner) ScanProviders(ctx context.Context) (map[string][]*manifest.Descriptor, error) {
	all, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]*manifest.Descriptor)
	for _, kind := range marker.ProviderKinds() {
		for _, desc := range all {
			if desc.Marker == kind {
				buckets[kind.Category()] = append(buckets[kind.Category()], desc)
			}
		}
	}
	return buckets, nil
}
