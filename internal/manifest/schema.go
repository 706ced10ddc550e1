package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// settingsBlock represents the content of the optional 'settings' block
// within a component. Its attributes are free-form and captured as-is.
type settingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// componentBlock represents a `component` block from a manifest file. The
// block label is the declared type name of the component; everything else is
// the marker metadata the scanner reflects over.
type componentBlock struct {
	TypeLabel   string         `hcl:"type,label"`
	Marker      string         `hcl:"marker"`
	Constructor string         `hcl:"constructor"`
	Name        string         `hcl:"name,optional"`
	Priority    int            `hcl:"priority,optional"`
	Enabled     *bool          `hcl:"enabled,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Settings    *settingsBlock `hcl:"settings,block"`
}

// fileSchema represents the top-level structure of a single manifest file.
type fileSchema struct {
	Components []*componentBlock `hcl:"component,block"`
	Body       hcl.Body          `hcl:",remain"`
}
