package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/index"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search skills by name and description",
	Long: `Search the repository's skills using a cached keyword index.
The index is rebuilt automatically when skills change.

Examples:
  skillbook search pdf
  skillbook search "git worktree"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

var searchRebuild bool

func init() {
	searchCmd.Flags().BoolVar(&searchRebuild, "rebuild", false, "Force an index rebuild before searching")
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	var idx *index.Index
	if searchRebuild {
		idx, err = index.Build(r)
		if err == nil {
			err = index.Save(r.SkillsDir(), idx)
		}
	} else {
		idx, err = index.Ensure(r)
	}
	if err != nil {
		exitWithError(err.Error())
	}

	results := index.Search(idx, query)
	if len(results) == 0 {
		fmt.Print(ui.NoResults(query))
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader(fmt.Sprintf("Results for \"%s\"", query)))
	fmt.Println()

	descWidth := ui.DescriptionWidth()
	for _, res := range results {
		fmt.Printf("  %s %s %s\n",
			ui.SkillBadge(),
			ui.RenderHighlight(res.Entry.Name),
			ui.RenderDim(fmt.Sprintf("(score %d)", res.Score)))
		fmt.Printf("     %s\n", ui.RenderMuted(ui.Truncate(res.Entry.Description, descWidth)))
	}

	fmt.Println()
	fmt.Printf("  %s\n", ui.RenderInfo(fmt.Sprintf("%d matching skills", len(results))))
	fmt.Println(ui.PageFooter())
}
