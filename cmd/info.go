package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/catalog"
	"github.com/niuverse/skillbook/internal/detect"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:     "info <name>",
	Aliases: []string{"show", "describe"},
	Short:   "Show details about a skill",
	Long: `Display a skill's metadata, bundled files, and any setup
requirements detected in its body or scripts.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	s, err := r.Get(args[0])
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Print(ui.PageHeader(s.Name))
	fmt.Println()

	descWidth := ui.DescriptionWidth()
	for _, line := range ui.WrapText(s.Description, descWidth) {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	fmt.Printf("  %s %s\n", ui.RenderDim("Directory:"), s.Dir)
	fmt.Printf("  %s %s\n", ui.RenderDim("Category: "), catalog.Categorize(s.Name, s.ShortDescription(60)))
	if s.Version != "" {
		fmt.Printf("  %s %s\n", ui.RenderDim("Version:  "), s.Version)
	}
	if s.Author != "" {
		fmt.Printf("  %s %s\n", ui.RenderDim("Author:   "), s.Author)
	}

	printFileGroup(ui.RefBadge(), s.References)
	printFileGroup(ui.ScriptBadge(), s.Scripts)
	printFileGroup(ui.AssetBadge(), s.Assets)

	reqs := detect.Merge(detect.FromBody(s.Body), detect.FromScripts(s.Scripts))
	if len(reqs) > 0 {
		fmt.Println()
		fmt.Println(ui.Subtitle.Render("  Requirements"))
		for _, req := range reqs {
			fmt.Printf("    %s %s %s\n",
				ui.RenderDim(string(req.Kind)),
				req.Value,
				ui.RenderDim("("+req.Source+")"))
		}
	}

	fmt.Println(ui.PageFooter())
}

func printFileGroup(badge string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %s\n", badge)
	for _, f := range files {
		fmt.Printf("    %s\n", ui.RenderMuted(f))
	}
}
