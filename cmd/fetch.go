package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/fetch"
	"github.com/niuverse/skillbook/internal/picker"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/source"
	"github.com/niuverse/skillbook/internal/ui"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch <source>",
	Aliases: []string{"import", "pull"},
	Short:   "Fetch skills from a GitHub repository",
	Long: `Download skills from a remote repository into the local skills
directory.

The source can be an owner/repo shorthand, optionally with a ref,
or a full GitHub URL. A top-level skills/ directory is scanned when
no path is given.

Examples:
  skillbook fetch anthropics/skills
  skillbook fetch anthropics/skills@main
  skillbook fetch https://github.com/anthropics/skills/tree/main/skills/pdf
  skillbook fetch owner/repo --name pdf-processing`,
	Args: cobra.ExactArgs(1),
	Run:  runFetch,
}

var (
	fetchName string
	fetchAll  bool
)

func init() {
	fetchCmd.Flags().StringVar(&fetchName, "name", "", "Fetch only the named skill")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "Fetch every discovered skill without prompting")
}

func runFetch(cmd *cobra.Command, args []string) {
	src, err := source.Parse(args[0])
	if err != nil {
		exitWithError(err.Error())
	}
	if src.Kind == source.KindLocal {
		exitWithError("local sources are not supported; copy the directory into skills/ instead")
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	ctx := context.Background()
	client := fetch.NewClient()

	fmt.Println()
	fmt.Println(ui.InfoLine(fmt.Sprintf("Scanning %s", src.String())))

	remotes, err := client.DiscoverSkills(ctx, src)
	if err != nil {
		exitWithError(err.Error())
	}
	if len(remotes) == 0 {
		exitWithError("no skills found in " + src.String())
	}

	selected := selectRemotes(remotes)
	if len(selected) == 0 {
		fmt.Println(ui.InfoLine("Nothing selected"))
		return
	}

	for _, remote := range selected {
		destDir := filepath.Join(r.SkillsDir(), remote.DirName)
		if _, err := os.Stat(destDir); err == nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("Skipping %s: %s already exists", remote.Name, destDir)))
			continue
		}

		files, err := client.Download(ctx, src, &remote, destDir)
		if err != nil {
			exitWithError(err.Error())
		}

		fmt.Println(ui.SuccessLine(fmt.Sprintf("Fetched %s (%d files)", remote.Name, len(files))))
	}

	fmt.Println(ui.InfoLine("Run `skillbook validate` and `skillbook catalog --write` to finish"))
	fmt.Println(ui.PageFooter())
}

// selectRemotes filters discovered skills by --name, --all, or a picker
func selectRemotes(remotes []fetch.RemoteSkill) []fetch.RemoteSkill {
	if fetchName != "" {
		for _, remote := range remotes {
			if remote.Name == fetchName || remote.DirName == fetchName {
				return []fetch.RemoteSkill{remote}
			}
		}
		exitWithError(fmt.Sprintf("skill '%s' not found in source", fetchName))
	}

	if fetchAll || len(remotes) == 1 || !picker.ShouldRun() {
		return remotes
	}

	items := make([]picker.Item, 0, len(remotes))
	byName := make(map[string]fetch.RemoteSkill, len(remotes))
	for _, remote := range remotes {
		items = append(items, picker.Item{Name: remote.Name, Description: remote.Description})
		byName[remote.Name] = remote
	}

	names, err := picker.Run("Select skills to fetch", items)
	if err != nil {
		exitWithError(err.Error())
	}

	var selected []fetch.RemoteSkill
	for _, name := range names {
		if remote, ok := byName[name]; ok {
			selected = append(selected, remote)
		}
	}
	return selected
}
