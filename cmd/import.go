package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karim/itqan/internal/content"
)

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Import an author workbook into a lesson catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		sheet, _ := cmd.Flags().GetString("sheet")

		cfg := content.DefaultImportConfig()
		if sheet != "" {
			cfg.SheetName = sheet
		}

		cat, result, err := content.ImportWorkbook(args[0], cfg)
		if err != nil {
			return err
		}
		if err := content.SaveCatalog(out, cat); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"Imported %d items into %d lessons (%d rows, %d skipped)\n",
			result.ItemsImported, result.LessonsCreated, result.RowsProcessed, result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", e)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("out", "catalog.json", "Output catalog path")
	importCmd.Flags().String("sheet", "", "Sheet name (default Sheet1)")
}
