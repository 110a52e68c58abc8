package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/scrollbind"
	"github.com/phanxgames/scrollbind/decl"
	"github.com/phanxgames/scrollbind/headless"
)

// Fixture is a page, the binder declarations to run on it and an optional
// scroll script:
//
//	viewport: 600
//	page:
//	  - {name: header, id: header, width: 800, height: 80}
//	  - {name: main, top: 80, width: 800, height: 2000}
//	binder:
//	  over: 100
//	  animations:
//	    "#header":
//	      height: {to: 40}
//	script:
//	  steps:
//	    - {action: scroll, y: 50, frames: 5}
//	    - {action: wait, ms: 100}
//	    - {action: snapshot, label: half}
type Fixture struct {
	Viewport float64                `yaml:"viewport"`
	Root     string                 `yaml:"root"` // selector of the scrolling root; empty binds the page
	Page     []headless.ElementSpec `yaml:"page"`
	Binder   yaml.Node              `yaml:"binder"`
	Script   *headless.Script       `yaml:"script"`

	// Decl is the decoded binder section.
	Decl *decl.File `yaml:"-"`
}

// LoadError is a fixture or declaration file that could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Details []string // schema issues, if any
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// readDocument reads a YAML or JSON file into its top-level node.
func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error reading %s: %v", path, err)}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("%s is empty", path)}
	}
	return doc.Content[0], nil
}

// isFixture reports whether a top-level mapping is a fixture rather than a
// bare declaration file.
func isFixture(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "page", "binder", "script":
			return true
		}
	}
	return false
}

// LoadFixture reads and checks the fixture at path.
func LoadFixture(path string) (*Fixture, error) {
	n, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	f, err := decodeFixture(n)
	if err != nil {
		return nil, err
	}
	slog.Debug("fixture loaded", "path", path,
		"elements", len(f.Page), "selectors", len(f.Decl.Animations), "script", f.Script != nil)
	return f, nil
}

func decodeFixture(n *yaml.Node) (*Fixture, error) {
	f := &Fixture{}
	if err := n.Decode(f); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding fixture: %v", err)}
	}
	if len(f.Page) == 0 {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "fixture page has no elements"}
	}
	if f.Binder.Kind == 0 {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "fixture has no binder declarations"}
	}
	d, err := decodeDeclarations(&f.Binder)
	if err != nil {
		return nil, err
	}
	f.Decl = d
	if f.Script != nil {
		if err := f.Script.Check(); err != nil {
			return nil, &LoadError{Code: ErrCodeScript, Message: fmt.Sprintf("script: %v", err)}
		}
	}
	return f, nil
}

// decodeDeclarations decodes a declaration node, keeping schema issues as
// details.
func decodeDeclarations(n *yaml.Node) (*decl.File, error) {
	d, err := decl.Decode(n)
	if err == nil {
		return d, nil
	}
	var verr *decl.ValidationError
	if errors.As(err, &verr) {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: "declarations do not match the schema", Details: verr.Issues}
	}
	return nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
}

// Mount builds the fixture page on a fresh document and clock and binds the
// declarations to it.
func (f *Fixture) Mount() (*headless.Document, *headless.Clock, *scrollbind.Binder, error) {
	doc := headless.NewDocument(f.Viewport)
	doc.Build(nil, f.Page)
	clock := headless.NewClock()

	var root scrollbind.Element
	if f.Root != "" {
		el := doc.First(f.Root)
		if el == nil {
			return nil, nil, nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("root %q matched no element", f.Root)}
		}
		root = el
	}
	b := scrollbind.New(root, doc, clock, f.Decl.Options())
	slog.Debug("binder mounted", "root", f.Root, "records", b.Set().NumRecords(), "polling", b.Polling())
	return doc, clock, b, nil
}

// countProperties returns the number of declared properties.
func countProperties(d scrollbind.Declarations) int {
	n := 0
	for _, sel := range d {
		n += len(sel.Properties)
	}
	return n
}
