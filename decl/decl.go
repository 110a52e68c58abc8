// Package decl loads scrollbind declaration files.
//
// A declaration file is YAML (or JSON) with optional engine defaults and an
// ordered map of selectors to properties:
//
//	over: 70
//	delay: 0
//	poll: false
//	animations:
//	  "#header":
//	    height: {to: 40, over: 100}
//	    class: {to: compact, delay: 50}
//	  ".card":
//	    opacity: {from: 0, to: 1, viewport: true, ease: outQuad}
//	    translateY: {from: 40, to: 0, unit: px, viewport: true}
//	  aside:
//	    lock: {over: 600, delay: 200}
//
// Files are validated against a closed CUE schema before decoding, so
// unknown fields, wrong types and unknown ease names are errors. Selector and
// property order is preserved.
package decl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/scrollbind"
)

// ViewportDistance is the over value that spans the viewport.
const ViewportDistance = "viewport"

// File is a decoded declaration file.
type File struct {
	Over       float64
	Delay      float64
	Poll       bool
	Animations scrollbind.Declarations
}

// Options returns binder options carrying the file's defaults and
// declarations.
func (f *File) Options() scrollbind.Options {
	return scrollbind.Options{
		Over:       f.Over,
		Delay:      f.Delay,
		Poll:       f.Poll,
		Animations: f.Animations,
	}
}

// ReadFile loads and decodes the declaration file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON declaration file.
func Parse(data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse declarations: %w", err)
	}
	return Decode(&root)
}

// Decode validates and decodes a declaration file from a YAML node, which
// may be a document node or the top-level mapping itself.
func Decode(n *yaml.Node) (*File, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, fmt.Errorf("decode declarations: empty document")
		}
		n = n.Content[0]
	}
	if n.Kind == 0 {
		return nil, fmt.Errorf("decode declarations: empty document")
	}
	var raw any
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode declarations: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	f := &File{}
	err := eachPair(n, func(key string, val *yaml.Node) error {
		switch key {
		case "over":
			return val.Decode(&f.Over)
		case "delay":
			return val.Decode(&f.Delay)
		case "poll":
			return val.Decode(&f.Poll)
		case "animations":
			var err error
			f.Animations, err = decodeAnimations(val)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode declarations: %w", err)
	}
	return f, nil
}

func decodeAnimations(n *yaml.Node) (scrollbind.Declarations, error) {
	var decls scrollbind.Declarations
	err := eachPair(n, func(selector string, props *yaml.Node) error {
		return eachPair(props, func(name string, val *yaml.Node) error {
			spec, err := decodeProperty(name, val)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", selector, name, err)
			}
			decls = decls.Add(selector, name, spec)
			return nil
		})
	})
	return decls, err
}

// decodeProperty decodes one property mapping. Field types have been
// checked by the schema; the rules that depend on the property name are
// checked here.
func decodeProperty(name string, n *yaml.Node) (scrollbind.PropertySpec, error) {
	var spec scrollbind.PropertySpec
	err := eachPair(n, func(field string, val *yaml.Node) error {
		switch field {
		case "from":
			var v float64
			if err := val.Decode(&v); err != nil {
				return err
			}
			spec.From = scrollbind.Ptr(v)
		case "to":
			if name == scrollbind.PropertyClass {
				return val.Decode(&spec.Class)
			}
			if !isNumber(val) {
				return fmt.Errorf("to must be a number, got %q", val.Value)
			}
			var v float64
			if err := val.Decode(&v); err != nil {
				return err
			}
			spec.To = scrollbind.Ptr(v)
		case "over":
			if val.Value == ViewportDistance && !isNumber(val) {
				spec.Over = scrollbind.Viewport()
				return nil
			}
			var v float64
			if err := val.Decode(&v); err != nil {
				return err
			}
			spec.Over = scrollbind.Px(v)
		case "delay":
			var v float64
			if err := val.Decode(&v); err != nil {
				return err
			}
			spec.Delay = scrollbind.Px(v)
		case "unit":
			var v string
			if err := val.Decode(&v); err != nil {
				return err
			}
			spec.Unit = scrollbind.Ptr(v)
		case "viewport":
			return val.Decode(&spec.Viewport)
		case "sway":
			return val.Decode(&spec.Sway)
		case "ease":
			fn, ok := scrollbind.Ease(val.Value)
			if !ok {
				return fmt.Errorf("unknown ease %q", val.Value)
			}
			spec.Ease = fn
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		return nil
	})
	return spec, err
}

// eachPair calls fn for every key/value pair of a mapping node, in order.
func eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNumber(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	tag := n.ShortTag()
	return tag == "!!int" || tag == "!!float"
}
