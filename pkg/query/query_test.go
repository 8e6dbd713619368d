package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

func sample() *tree.Node {
	root := tree.New("Root")
	src := root.Add("src")
	src.Add("main.go")
	src.Add("util.go")
	docs := root.Add("docs")
	docs.Add("src")
	root.Add("README")
	return root
}

func TestNames(t *testing.T) {
	root := sample()

	tests := []struct {
		name    string
		expr    string
		want    []string
		ordered bool
	}{
		{"top level", "$.children[*]", []string{"src", "docs", "README"}, true},
		{"root", "$", []string{"Root"}, true},
		{"nested index", "$.children[0].children[1]", []string{"util.go"}, true},
		{"last child", "$.children[-1:]", []string{"README"}, true},
		{"filter", "$..children[?(@.name == 'src')]", []string{"src", "src"}, false},
		{"descendants", "$..children[*]", []string{"src", "main.go", "util.go", "docs", "src", "README"}, false},
		{"no match", "$.children[7]", nil, true},
		{"non-node matches skipped", "$.children[*].name", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Names(root, tt.expr)
			if err != nil {
				t.Fatalf("Names(%q): %v", tt.expr, err)
			}
			var opts []cmp.Option
			opts = append(opts, cmpopts.EquateEmpty())
			if !tt.ordered {
				opts = append(opts, cmpopts.SortSlices(func(a, b string) bool { return a < b }))
			}
			if diff := cmp.Diff(tt.want, got, opts...); diff != "" {
				t.Errorf("Names(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestFindReturnsTreeNodes(t *testing.T) {
	root := sample()
	nodes, err := Find(root, "$.children[0]")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0] != root.Children[0] {
		t.Errorf("Find should return the node itself, got %v", nodes)
	}
}

func TestInvalidExpression(t *testing.T) {
	_, err := Names(sample(), "$[?(@.name ==")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestNilTree(t *testing.T) {
	got, err := Names(nil, "$")
	if err != nil || len(got) != 0 {
		t.Errorf("Names(nil) = %v, %v", got, err)
	}
}
