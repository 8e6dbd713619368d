package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
)

func TestBrowserURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:3000", "http://127.0.0.1:3000"},
		{"example.test:80", "http://example.test:80"},
	}
	for _, tt := range tests {
		if got := browserURL(tt.addr); got != tt.want {
			t.Errorf("browserURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name      string
		path      string
		wantCode  errors.Code
		wantWhere string
		wantLen   int
	}{
		{"valid", write("ok.json", `{"name":"r","children":[{"name":"a"},{"name":"b"}]}`), "", "", 3},
		{"malformed", write("bad.json", `{`), errors.ErrCodeParse, "", 0},
		{"nested failure", write("nested.json", `{"name":"r","children":[{"name":"a"},{"children":[]}]}`), errors.ErrCodeInvalidTree, "$.children[1]", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validateFile(tt.path)
			if tt.wantCode == "" {
				if res.err != nil {
					t.Fatalf("unexpected error: %v", res.err)
				}
				if n := res.root.Len(); n != tt.wantLen {
					t.Errorf("Len() = %d, want %d", n, tt.wantLen)
				}
				return
			}
			if !errors.Is(res.err, tt.wantCode) {
				t.Fatalf("err = %v, want code %s", res.err, tt.wantCode)
			}
			if res.where != tt.wantWhere {
				t.Errorf("where = %q, want %q", res.where, tt.wantWhere)
			}
		})
	}

	if res := validateFile(filepath.Join(dir, "missing.json")); res.err == nil {
		t.Error("missing file should fail")
	}
}

func TestRunFmtWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(`{"children":[{"name":"a","extra":1}],"name":"r"}`), 0600); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runFmt(path, true); err != nil {
		t.Fatalf("runFmt: %v", err)
	}

	got, _ := os.ReadFile(path)
	want := `{
  "name": "r",
  "children": [
    {
      "name": "a",
      "children": []
    }
  ]
}
`
	if string(got) != want {
		t.Errorf("formatted =\n%s\nwant\n%s", got, want)
	}

	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	// A second pass is a no-op.
	if err := c.runFmt(path, true); err != nil {
		t.Fatalf("second runFmt: %v", err)
	}
}

func TestRunFmtInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	os.WriteFile(path, []byte(`{"name":""}`), 0644)

	c := New(io.Discard, LogInfo)
	if err := c.runFmt(path, true); !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Errorf("runFmt() = %v, want INVALID_TREE", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != `{"name":""}` {
		t.Error("invalid file was rewritten")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"serve", "edit", "render", "validate", "fmt", "query", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExampleTreesAreCanonical(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "trees", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no example trees")
	}
	for _, path := range files {
		res := validateFile(path)
		if res.err != nil {
			t.Errorf("%s: %v", path, res.err)
			continue
		}
		orig, _ := os.ReadFile(path)
		data, _ := arborio.Marshal(res.root)
		if string(orig) != string(data) {
			t.Errorf("%s is not in canonical form", path)
		}
	}
}

func TestQueryCommandPrintsNames(t *testing.T) {
	input := filepath.Join(t.TempDir(), "tree.json")
	writeFile(t, input, smallTree)

	c, _, out := newTestCLI()
	cmd := c.queryCommand()
	if err := cmd.RunE(cmd, []string{input, "$.children[*]"}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\nb\n" {
		t.Errorf("output = %q, want names one per line", got)
	}
}
