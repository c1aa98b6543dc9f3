package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"smuverify/internal/domain/tables"
)

func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [id]",
		Short: "Показать реестр допусковых таблиц раздела 18",
		Long: "Без аргумента выводит список таблиц 18-2 … 18-16. С номером таблицы\n" +
			"(например, 18-3) выводит её строки: диапазон, уставку и допуск.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := Formatter{Format: rootOpts.Format, Out: cmd.OutOrStdout()}

			if len(args) == 0 {
				return listTables(formatter)
			}

			return showTable(formatter, args[0])
		},
	}

	return cmd
}

func listTables(formatter Formatter) error {
	registry := tables.All()

	return formatter.Print(registry, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

		fmt.Fprintf(tw, "ID\tROWS\tTITLE\n")

		for _, table := range registry {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", table.ID, tableRows(table), table.Title)
		}

		return tw.Flush()
	})
}

func showTable(formatter Formatter, id string) error {
	table, err := tables.ByID(id)
	if err != nil {
		return WrapExitError(ExitCommandError, "tables", err)
	}

	return formatter.Print(table, func(w io.Writer) error {
		fmt.Fprintf(w, "%s — %s\n\n", table.ID, table.Title)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

		switch {
		case len(table.Compliance) > 0:
			fmt.Fprintf(tw, "RANGE\tUNIT\tMAX\n")

			for _, row := range table.Compliance {
				fmt.Fprintf(tw, "%s\t%s\t%g\n", row.RangeName, row.Unit, row.Max)
			}
		case len(table.StdRows) > 0:
			fmt.Fprintf(tw, "RANGE\tSET\tLOW\tHIGH\tUNIT\tR_NOM\n")

			for _, row := range table.StdRows {
				fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%s\t%g\n",
					row.RangeName, row.SetValue, row.Low, row.High, row.Unit, row.RNominal)
			}
		default:
			fmt.Fprintf(tw, "RANGE\tSET\tLOW\tHIGH\tUNIT\n")

			for _, row := range table.Rows {
				fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%s\n",
					row.RangeName, row.SetValue, row.Low, row.High, row.Unit)
			}
		}

		return tw.Flush()
	})
}

func tableRows(table tables.Table) int {
	return len(table.Rows) + len(table.StdRows) + len(table.Compliance)
}
