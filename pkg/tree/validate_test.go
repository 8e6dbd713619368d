package tree

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %s: %v", s, err)
	}
	return v
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantPath string
		check    func(t *testing.T, n *Node)
	}{
		{
			name:  "with children",
			input: `{"name":"Root","children":[{"name":"A","children":[]},{"name":"B","children":[]}]}`,
			check: func(t *testing.T, n *Node) {
				if n.Name != "Root" || len(n.Children) != 2 {
					t.Fatalf("got %q with %d children", n.Name, len(n.Children))
				}
				if n.Children[0].Name != "A" || n.Children[1].Name != "B" {
					t.Error("child order not preserved")
				}
			},
		},
		{
			name:  "no children field",
			input: `{"name":"X"}`,
			check: func(t *testing.T, n *Node) {
				if n.Name != "X" || len(n.Children) != 0 {
					t.Errorf("got %q with %d children", n.Name, len(n.Children))
				}
			},
		},
		{
			name:  "null children",
			input: `{"name":"X","children":null}`,
		},
		{
			name:  "extra fields dropped",
			input: `{"name":"X","color":"red","children":[{"name":"Y","size":3}]}`,
			check: func(t *testing.T, n *Node) {
				if n.Children[0].Name != "Y" {
					t.Error("child lost")
				}
			},
		},
		{
			name:  "deep nesting",
			input: `{"name":"a","children":[{"name":"b","children":[{"name":"c","children":[{"name":"d"}]}]}]}`,
			check: func(t *testing.T, n *Node) {
				if n.Depth() != 3 {
					t.Errorf("Depth() = %d, want 3", n.Depth())
				}
			},
		},
		{
			name:  "whitespace name accepted",
			input: `{"name":"  "}`,
		},
		{name: "missing name", input: `{"children":[]}`, wantErr: true, wantPath: "$"},
		{name: "empty name", input: `{"name":""}`, wantErr: true, wantPath: "$"},
		{name: "numeric name", input: `{"name":42}`, wantErr: true, wantPath: "$"},
		{name: "null name", input: `{"name":null}`, wantErr: true, wantPath: "$"},
		{name: "children object", input: `{"name":"r","children":{"name":"a"}}`, wantErr: true, wantPath: "$"},
		{name: "children string", input: `{"name":"r","children":"a"}`, wantErr: true, wantPath: "$"},
		{name: "top-level array", input: `[{"name":"r"}]`, wantErr: true, wantPath: "$"},
		{name: "top-level string", input: `"r"`, wantErr: true, wantPath: "$"},
		{
			name:     "bad descendant",
			input:    `{"name":"r","children":[{"name":"a"},{"name":"b","children":[{"name":1}]}]}`,
			wantErr:  true,
			wantPath: "$.children[1].children[0]",
		},
		{
			name:     "non-object child",
			input:    `{"name":"r","children":["a"]}`,
			wantErr:  true,
			wantPath: "$.children[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Validate(decode(t, tt.input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeInvalidTree) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTree)
				}
				var verr *ValidationError
				if !stderrors.As(err, &verr) {
					t.Fatalf("error %v does not wrap *ValidationError", err)
				}
				if verr.Path != tt.wantPath {
					t.Errorf("Path = %q, want %q", verr.Path, tt.wantPath)
				}
				if n != nil {
					t.Error("invalid input should not produce a tree")
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if n.ID == "" {
				t.Error("validated nodes should get IDs")
			}
			if tt.check != nil {
				tt.check(t, n)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !Valid(decode(t, `{"name":"X"}`)) {
		t.Error(`Valid({"name":"X"}) = false, want true`)
	}
	if Valid(decode(t, `{"children":[]}`)) {
		t.Error(`Valid({"children":[]}) = true, want false`)
	}
	if Valid(nil) {
		t.Error("Valid(nil) = true, want false")
	}
}

func TestCheck(t *testing.T) {
	built := New("Root")
	built.Add("a").Add("a1")
	built.Add("b")
	if err := Check(built); err != nil {
		t.Fatalf("Check(built) = %v", err)
	}

	loaded, err := Validate(decode(t, `{"name":"r","children":[{"name":"x"},{"name":"y"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := Check(loaded); err != nil {
		t.Errorf("Check(loaded) = %v", err)
	}

	leaf := New("leaf")
	cyclic := &Node{ID: "c", Name: "C"}
	cyclic.Children = []*Node{cyclic}

	tests := []struct {
		name string
		root *Node
		path string
	}{
		{"nil", nil, "$"},
		{"empty name", &Node{ID: "r"}, "$"},
		{"empty id", &Node{Name: "r"}, "$"},
		{"nil child", &Node{ID: "r", Name: "r", Children: []*Node{{ID: "a", Name: "a"}, nil}}, "$.children[1]"},
		{"duplicate id", &Node{ID: "r", Name: "r", Children: []*Node{{ID: "a", Name: "a"}, {ID: "a", Name: "b"}}}, "$.children[1]"},
		{"shared node", &Node{ID: "r", Name: "r", Children: []*Node{leaf, {ID: "x", Name: "x", Children: []*Node{leaf}}}}, "$.children[1].children[0]"},
		{"cycle", cyclic, "$.children[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.root)
			if !errors.Is(err, errors.ErrCodeInvalidTree) {
				t.Fatalf("Check() = %v, want INVALID_TREE", err)
			}
			var verr *ValidationError
			if !stderrors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("Check() = %v, want failure at %s", err, tt.path)
			}
		})
	}
}
