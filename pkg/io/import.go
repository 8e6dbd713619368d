package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// utf8BOM is the byte order mark some editors write at the start of UTF-8 files.
var utf8BOM = []byte("\xef\xbb\xbf")

// ParseText parses data as JSON and returns the untyped document.
// A leading UTF-8 byte order mark is skipped. Malformed input, including
// trailing data after the document, yields an error with code
// [errors.ErrCodeParse].
func ParseText(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "Invalid JSON file")
	}
	return doc, nil
}

// Decode parses and validates data, returning a tree with fresh node IDs.
//
// Decode returns an error if:
//   - the JSON is malformed ([errors.ErrCodeParse])
//   - the document is not a name tree ([errors.ErrCodeInvalidTree]); the
//     error wraps a [*tree.ValidationError] naming the failing node
func Decode(data []byte) (*tree.Node, error) {
	doc, err := ParseText(data)
	if err != nil {
		return nil, err
	}
	return tree.Validate(doc)
}

// ReadJSON reads r to EOF and decodes the result with [Decode].
// Nothing is parsed until the whole input is available. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// ImportJSON reads the JSON file at path and returns the decoded tree.
//
// A missing file yields [errors.ErrCodeFileNotFound]; parse and validation
// failures are reported as for [Decode].
func ImportJSON(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return Decode(data)
}
