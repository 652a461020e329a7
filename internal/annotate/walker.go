package annotate

import (
	"strconv"
	"time"

	"go.yaml.in/yaml/v3"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/ahmetb/reldate/internal/timeutil"
)

// Target is a timestamp scalar found in a YAML tree.
//
// KeyNode is the mapping key the value belongs to, or nil for sequence items
// and document-level scalars. ValueNode is the scalar holding the timestamp.
type Target struct {
	Path      string
	KeyNode   *yaml.Node
	ValueNode *yaml.Node
	Time      time.Time
	Label     timeutil.Label
}

// walker descends a YAML tree and collects timestamp scalars.
type walker struct {
	keys sets.Set[string]
	loc  *time.Location
	out  []Target
}

// walk visits node. key is the nearest mapping key above node (for sequence
// items, the key of the sequence) and keyNode is set only when node is the
// direct value of that key.
func (w *walker) walk(node, keyNode *yaml.Node, key, path string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode:
		for _, c := range node.Content {
			w.walk(c, nil, "", path)
		}
	case yaml.MappingNode:
		for i := 0; i < len(node.Content)-1; i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			w.walk(v, k, k.Value, joinPath(path, k.Value))
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			w.walk(item, nil, key, path+"["+strconv.Itoa(i)+"]")
		}
	case yaml.ScalarNode:
		if t, ok := w.timestamp(node, key); ok {
			w.out = append(w.out, Target{
				Path:      path,
				KeyNode:   keyNode,
				ValueNode: node,
				Time:      t,
			})
		}
	}
}

// timestamp reports whether a scalar under key should be annotated. With a
// key filter only listed keys qualify, and they may also hold epoch offsets.
// Without one, any string or timestamp scalar that reads as a calendar
// time qualifies.
func (w *walker) timestamp(node *yaml.Node, key string) (time.Time, bool) {
	if w.keys.Len() > 0 {
		if !w.keys.Has(key) {
			return time.Time{}, false
		}
		t, err := timeutil.Parse(node.Value, w.loc)
		return t, err == nil
	}

	switch node.ShortTag() {
	case "!!timestamp", "!!str":
	default:
		return time.Time{}, false
	}
	t, err := timeutil.ParseCalendar(node.Value, w.loc)
	return t, err == nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
