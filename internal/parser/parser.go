package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ParseDocuments decodes every YAML document in r. Each returned node has
// Kind == DocumentNode. An empty stream yields no documents and no error.
func ParseDocuments(r io.Reader) ([]*yaml.Node, error) {
	decoder := yaml.NewDecoder(r)
	var docs []*yaml.Node

	for i := 0; ; i++ {
		var doc yaml.Node
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("YAML parse error in document %d: %w", i, err)
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

// UnwrapListKind splits a list document (kind "List", or a typed list such as
// "PodList", with an items sequence) into one DocumentNode per item. Any
// other document is returned as a single-element slice.
func UnwrapListKind(doc *yaml.Node) []*yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return []*yaml.Node{doc}
	}

	root := doc.Content[0]
	kind, ok := getMapValue(root, "kind")
	if !ok || !strings.HasSuffix(kind, "List") {
		return []*yaml.Node{doc}
	}

	items, ok := getMapValueNode(root, "items")
	if !ok || items.Kind != yaml.SequenceNode {
		return []*yaml.Node{doc}
	}

	out := make([]*yaml.Node, 0, len(items.Content))
	for _, item := range items.Content {
		out = append(out, &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{item},
		})
	}
	return out
}

// EncodeDocuments writes docs to w separated by "---", with a 2-space indent
// and compact sequences, the way kubectl prints YAML.
func EncodeDocuments(w io.Writer, docs []*yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	enc.CompactSeqIndent()

	for i, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("YAML encode error in document %d: %w", i, err)
		}
	}
	return enc.Close()
}

// getMapValue returns the scalar value of key in a MappingNode.
func getMapValue(mapping *yaml.Node, key string) (string, bool) {
	v, ok := getMapValueNode(mapping, key)
	if !ok || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// getMapValueNode returns the value node of key in a MappingNode.
func getMapValueNode(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	if mapping.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1], true
		}
	}
	return nil, false
}
