package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/catalog"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/ui"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"readme", "table"},
	Short:   "Generate the README skills catalog",
	Long: `Build the catalog table from skill frontmatter.

By default the table is printed to stdout. With --write, the
"Skills Catalog" section of README.md is replaced in place.

Examples:
  skillbook catalog                # Print the table
  skillbook catalog --write        # Update README.md
  skillbook catalog --check        # Exit non-zero if README.md is stale`,
	Run: runCatalog,
}

var (
	catalogWrite bool
	catalogCheck bool
)

func init() {
	catalogCmd.Flags().BoolVar(&catalogWrite, "write", false, "Update the README catalog section in place")
	catalogCmd.Flags().BoolVar(&catalogCheck, "check", false, "Check whether the README catalog is up to date")
}

func runCatalog(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	skills, err := r.Scan()
	if err != nil {
		exitWithError(err.Error())
	}

	table := catalog.Render(catalog.Build(skills))
	readmePath := filepath.Join(r.Root, "README.md")

	switch {
	case catalogCheck:
		fresh, err := catalog.CheckReadme(readmePath, table)
		if err != nil {
			exitWithError(err.Error())
		}
		if !fresh {
			fmt.Println(ui.ErrorLine("README catalog is out of date; run `skillbook catalog --write`"))
			os.Exit(1)
		}
		fmt.Println(ui.SuccessLine("README catalog is up to date"))

	case catalogWrite:
		changed, err := catalog.UpdateReadme(readmePath, table)
		if err != nil {
			exitWithError(err.Error())
		}
		if changed {
			fmt.Println(ui.SuccessLine(fmt.Sprintf("Updated catalog with %d skills", len(skills))))
		} else {
			fmt.Println(ui.InfoLine("Catalog already up to date"))
		}

	default:
		fmt.Println(table)
	}
}
