package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/weavekit/weavekit/internal/ctxlog"
	"github.com/weavekit/weavekit/internal/marker"
)

// Loader parses HCL manifest files into descriptors. A single Loader reuses
// one underlying parser so diagnostics can reference every file seen so far.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh HCL parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadFile parses one manifest file and translates every component block in
// it into a Descriptor. Errors are per-file and carry the file path; the
// caller decides whether a bad file aborts or is skipped.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var file fileSchema
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	descriptors := make([]*Descriptor, 0, len(file.Components))
	for _, block := range file.Components {
		desc, err := translateComponent(block, path)
		if err != nil {
			return nil, fmt.Errorf("in manifest %s: %w", path, err)
		}
		descriptors = append(descriptors, desc)
		logger.Debug("Loaded component descriptor.",
			"type", desc.TypeLabel, "marker", desc.Marker.String(), "name", desc.Name, "file", path)
	}

	return descriptors, nil
}

// translateComponent converts the HCL-specific component schema into the
// agnostic descriptor model, applying the defaulting rules.
func translateComponent(block *componentBlock, source string) (*Descriptor, error) {
	kind, err := marker.Parse(block.Marker)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", block.TypeLabel, err)
	}

	if block.Constructor == "" {
		return nil, fmt.Errorf("component %q: constructor must not be empty", block.TypeLabel)
	}

	name := block.Name
	if name == "" {
		name = defaultName(block.TypeLabel)
	}

	// Enabled defaults to true when the attribute is omitted.
	enabled := true
	if block.Enabled != nil {
		enabled = *block.Enabled
	}

	settings, err := translateSettings(block.Settings)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", block.TypeLabel, err)
	}

	return &Descriptor{
		TypeLabel:   block.TypeLabel,
		Marker:      kind,
		Category:    kind.Category(),
		Name:        name,
		Constructor: block.Constructor,
		Priority:    block.Priority,
		Enabled:     enabled,
		Optional:    block.Optional,
		Settings:    settings,
		Source:      source,
	}, nil
}

// translateSettings evaluates the free-form settings block into concrete cty
// values. Settings are static metadata, so expressions are evaluated without
// any variable context.
func translateSettings(block *settingsBlock) (Settings, error) {
	if block == nil {
		return nil, nil
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid settings block: %w", diags)
	}

	settings := make(Settings, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid settings value %q: %w", name, diags)
		}
		if val == cty.NilVal {
			continue
		}
		settings[name] = val
	}

	return settings, nil
}
