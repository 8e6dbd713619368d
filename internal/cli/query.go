package cli

import (
	"github.com/spf13/cobra"

	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/query"
)

// queryCommand creates the query command.
func (c *CLI) queryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query <file> <jsonpath>",
		Short: "Print the names of nodes matching a JSONPath",
		Long: `Print the names of nodes matching a JSONPath expression, one per line.

Examples:
  arbor query tree.json '$.children[*]'
  arbor query tree.json "$..children[?(@.name == 'src')]"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := arborio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			names, err := query.Names(root, args[1])
			if err != nil {
				return err
			}
			for _, name := range names {
				c.out.line(StyleHighlight.Render(name))
			}
			c.Logger.Debug("query done", "expr", args[1], "matches", len(names))
			return nil
		},
	}
}
