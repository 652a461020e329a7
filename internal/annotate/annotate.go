package annotate

import (
	"time"

	"go.yaml.in/yaml/v3"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"github.com/ahmetb/reldate/internal/timeutil"
)

// Options configures annotation behaviour.
type Options struct {
	Above  bool             // true = HeadComment above the field, false = LineComment inline
	Now    time.Time        // reference time for relative labels (enables deterministic tests)
	Format timeutil.Options // formatting hints passed to the formatter
	Keys   sets.Set[string] // when non-empty, only these keys are annotated

	// Formatter renders labels. Nil uses timeutil.New().
	Formatter *timeutil.Formatter
}

// Annotate finds timestamp scalars under root and attaches their relative
// label as a YAML comment. root may be a DocumentNode or any node below it.
//
// The function operates in two passes:
//  1. Collect: walk the tree and record every timestamp scalar.
//  2. Inject: format each one against opts.Now and set LineComment (inline)
//     or HeadComment (above) on the appropriate node.
//
// The returned targets are in document order.
func Annotate(root *yaml.Node, opts Options) []Target {
	f := opts.Formatter
	if f == nil {
		f = timeutil.New()
	}

	w := &walker{keys: opts.Keys, loc: opts.Now.Location()}
	w.walk(root, nil, "", "")

	for i := range w.out {
		target := &w.out[i]
		target.Label = f.Describe(target.Time, opts.Now, opts.Format)
		injectComment(*target, target.Label.Text, opts.Above)
	}
	return w.out
}

// injectComment places a comment on the appropriate node. Sequence items and
// bare scalars have no key node, so above-mode comments go on the value.
func injectComment(target Target, comment string, above bool) {
	klog.V(3).InfoS("injecting comment", "path", target.Path, "comment", comment, "above", above)
	if above {
		if target.KeyNode != nil {
			target.KeyNode.HeadComment = comment
		} else {
			target.ValueNode.HeadComment = comment
		}
		return
	}
	target.ValueNode.LineComment = comment
}
