// Package fixtures loads reference-data rows from YAML documents into
// refdata collections. A document is either a sequence of attribute
// mappings, or a mapping of row labels to attribute mappings (labels are
// dropped; they only serve readability of the fixture file).
package fixtures

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andreyvit/refdata"
)

// Load parses one YAML document into rows, preserving order.
func Load(r io.Reader) ([]map[string]any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		rows := make([]map[string]any, 0, len(root.Content))
		for _, n := range root.Content {
			row, err := decodeRow(n)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	case yaml.MappingNode:
		// labeled rows: values are the attribute mappings
		rows := make([]map[string]any, 0, len(root.Content)/2)
		for i := 1; i < len(root.Content); i += 2 {
			row, err := decodeRow(root.Content[i])
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("fixtures: expected a sequence or mapping at line %d", root.Line)
	}
}

func decodeRow(n *yaml.Node) (map[string]any, error) {
	var row map[string]any
	if err := n.Decode(&row); err != nil {
		return nil, fmt.Errorf("fixtures: row at line %d: %w", n.Line, err)
	}
	return row, nil
}

// LoadFile parses the YAML file at path into rows.
func LoadFile(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply replaces the collection's contents with the given rows.
func Apply(coll *refdata.Collection, rows []map[string]any) error {
	return coll.ReplaceAll(rows)
}

// LoadDir loads every .yml/.yaml file in dir into the registry; the file
// base name is the record-type name, defined on demand. Files load in name
// order.
func LoadDir(reg *refdata.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		rows, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		typeName := strings.TrimSuffix(name, filepath.Ext(name))
		coll := reg.Collection(typeName)
		if coll == nil {
			coll = reg.Define(typeName)
		}
		if err := Apply(coll, rows); err != nil {
			return fmt.Errorf("fixtures: %s: %w", name, err)
		}
	}
	return nil
}
