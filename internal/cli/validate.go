package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/tree"
)

// validateResult is the outcome for one file.
type validateResult struct {
	path  string
	root  *tree.Node
	err   error
	where string // failing JSON path for structural errors
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that files hold valid trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]validateResult, len(args))
			failed := 0
			for i, path := range args {
				results[i] = validateFile(path)
				if results[i].err != nil {
					failed++
				}
			}
			c.printValidateTable(results)
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidTree, "%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}

func validateFile(path string) validateResult {
	res := validateResult{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.err = err
		return res
	}
	res.root, res.err = arborio.Decode(data)

	var verr *tree.ValidationError
	if stderrors.As(res.err, &verr) {
		res.where = verr.Path
	}
	return res
}

// describe returns the status column text for a result.
func (r validateResult) describe() string {
	switch {
	case r.err == nil:
		return iconSuccess + " valid"
	case r.where != "":
		var verr *tree.ValidationError
		stderrors.As(r.err, &verr)
		return fmt.Sprintf("%s %s: %s", iconError, r.where, verr.Reason)
	case errors.Is(r.err, errors.ErrCodeParse):
		return iconError + " " + errors.UserMessage(r.err)
	default:
		return iconError + " " + r.err.Error()
	}
}

func (c *CLI) printValidateTable(results []validateResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		nodes, depth := "-", "-"
		if r.err == nil {
			nodes = fmt.Sprint(r.root.Len())
			depth = fmt.Sprint(r.root.Depth())
		}
		rows[i] = []string{r.path, r.describe(), nodes, depth}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("File", "Status", "Nodes", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 1:
				if results[row].err == nil {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorRed)
			case 2, 3:
				return base.Foreground(colorCyan)
			}
			return base
		})

	c.out.line(t.Render())
}
