package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/report"
)

const sampleTableNote = "Atenção: tabela embutida com valores ilustrativos; configure reference.path com a tabela publicada."

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the loaded reference table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")

		table, err := reference.Load(cfg.Reference.Path)
		if err != nil {
			return err
		}
		return printTable(cmd.OutOrStdout(), table, format)
	},
}

func init() {
	tableCmd.Flags().String("format", "text", "output format: text or yaml")
	rootCmd.AddCommand(tableCmd)
}

func printTable(w io.Writer, table *reference.Table, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close() //nolint:errcheck
		if err := enc.Encode(table.Rows()); err != nil {
			return eris.Wrap(err, "table: encode yaml")
		}
		return nil
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "AMINA\tNITRITO\tTEMPERATURA\tPH\tPPB")
		for _, r := range table.Rows() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Amine, r.Nitrite, r.Temperature, r.PH, report.FormatNumber(r.PPB))
		}
		fmt.Fprintf(tw, "\n%d rows\n", table.Len())
		if table.Illustrative() {
			fmt.Fprintln(tw, sampleTableNote)
		}
		return tw.Flush()
	default:
		return eris.Errorf("table: unknown format %q", format)
	}
}
