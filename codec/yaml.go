// SPDX-License-Identifier: MIT

package codec

import (
	"fmt"

	"github.com/katalvlaran/lvengine/engine"
	"gopkg.in/yaml.v3"
)

// yamlDoc is the mapping form of a YAML fixture:
//
//	layout: col-major
//	reach: [4, 4]
//	cells:
//	  - [1, 2]
//	  - [3, 4]
type yamlDoc[T engine.Real] struct {
	Layout string `yaml:"layout"`
	Reach  []int  `yaml:"reach"`
	Cells  [][]T  `yaml:"cells"`
}

// LiteralFromYAML decodes a rectangular literal from YAML. The document is
// either a bare sequence of rows or a mapping with a cells key.
//
// Errors: ErrMalformed, engine.ErrShapeMismatch (ragged rows),
// engine.ErrInvalidLength (no rows), YAML decode errors.
func LiteralFromYAML[T engine.Real](data []byte) ([][]T, error) {
	doc, err := parseYAML[T](data)
	if err != nil {
		return nil, fmt.Errorf("codec.LiteralFromYAML: %w", err)
	}

	return doc.Cells, nil
}

// LoadYAML builds a fully dynamic storage engine from a YAML fixture. Layout
// and reach given in the document are applied first; opts are applied after
// them and win on conflict.
//
// Errors: as LiteralFromYAML, plus engine.ErrInvalidReach.
func LoadYAML[T engine.Real](data []byte, opts ...engine.Option) (*engine.Storage[T], error) {
	doc, err := parseYAML[T](data)
	if err != nil {
		return nil, fmt.Errorf("codec.LoadYAML: %w", err)
	}

	var docOpts []engine.Option
	if doc.Layout != "" {
		l, ok := parseLayout(doc.Layout)
		if !ok {
			return nil, fmt.Errorf("codec.LoadYAML: layout %q: %w", doc.Layout, ErrMalformed)
		}
		docOpts = append(docOpts, engine.WithLayout(l))
	}
	switch len(doc.Reach) {
	case 0:
	case 2:
		docOpts = append(docOpts, engine.WithReach(doc.Reach[0], doc.Reach[1]))
	default:
		return nil, fmt.Errorf("codec.LoadYAML: reach %v: %w", doc.Reach, ErrMalformed)
	}

	s, err := engine.NewFromLiteral(doc.Cells, append(docOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("codec.LoadYAML: %w", err)
	}

	return s, nil
}

// parseYAML decodes either document form and validates the literal.
func parseYAML[T engine.Real](data []byte) (*yamlDoc[T], error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, engine.ErrInvalidLength
	}

	doc := &yamlDoc[T]{}
	node := root.Content[0]
	var err error
	switch node.Kind {
	case yaml.SequenceNode:
		err = node.Decode(&doc.Cells)
	case yaml.MappingNode:
		err = node.Decode(doc)
	default:
		return nil, fmt.Errorf("top-level %s: %w", node.Tag, ErrMalformed)
	}
	if err != nil {
		return nil, err
	}
	if _, _, err = engine.ValidateLiteral(doc.Cells); err != nil {
		return nil, err
	}

	return doc, nil
}
