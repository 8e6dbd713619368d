package errors

import (
	"strings"
	"testing"
)

func TestValidateExportFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "tree-structure.json", false},
		{"upper ext", "TREE.JSON", false},
		{"spaces", "my tree.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300) + ".json", true},
		{"no extension", "tree", true},
		{"wrong extension", "tree.txt", true},
		{"with path /", "out/tree.json", true},
		{"with path \\", "out\\tree.json", true},
		{"hidden file", ".tree.json", true},
		{"control char", "tree\x01.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExportFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateExportFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "tree.svg", false},
		{"nested", "out/diagrams/tree.png", false},
		{"absolute", "/tmp/tree.pdf", false},

		{"empty", "", true},
		{"directory", "out/", true},
		{"null byte", "tree\x00.svg", true},
		{"newline", "tree\n.svg", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
