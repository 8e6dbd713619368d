package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
)

// fmtCommand creates the fmt command, which rewrites a tree in canonical form.
func (c *CLI) fmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a tree file in canonical form",
		Long: `Print a tree file in canonical form: two-space indentation, "name"
before "children", and an explicit empty children list on leaves.
Unknown keys are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(args[0], write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}

func (c *CLI) runFmt(path string, write bool) error {
	root, err := arborio.ImportJSON(path)
	if err != nil {
		return err
	}
	data, err := arborio.Marshal(root)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "format %s", path)
	}

	if !write {
		_, err := c.out.w.Write(data)
		return err
	}

	orig, err := os.ReadFile(path)
	if err == nil && string(orig) == string(data) {
		c.Logger.Debug("already formatted", "file", path)
		return nil
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.out.success("Formatted %s", path)
	return nil
}

// writeFileAtomic replaces path via a temp file in the same directory, so a
// watcher on path never sees a partial write.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
