package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/install"
	"github.com/niuverse/skillbook/internal/picker"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/ui"
)

var installCmd = &cobra.Command{
	Use:     "install [name...]",
	Aliases: []string{"i"},
	Short:   "Install skills into an agent's config directory",
	Long: `Copy skills from the repository into an agent's skills directory
and record them in the install state.

With no arguments in an interactive terminal, opens a picker to
select skills.

Examples:
  skillbook install pdf-processing
  skillbook install pdf-processing git-worktrees --agent opencode
  skillbook install                # interactive picker`,
	Run: runInstall,
}

var installAgent string

func init() {
	installCmd.Flags().StringVar(&installAgent, "agent", "", "Target agent (default: detected)")
}

func runInstall(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	names := args
	if len(names) == 0 {
		if !picker.ShouldRun() {
			exitWithError("no skill names given (interactive picker requires a terminal)")
		}

		skills, err := r.Scan()
		if err != nil {
			exitWithError(err.Error())
		}
		if len(skills) == 0 {
			fmt.Print(ui.EmptyRepo())
			return
		}

		names, err = picker.Run("Select skills to install", picker.ItemsFromSkills(skills))
		if err != nil {
			exitWithError(err.Error())
		}
		if len(names) == 0 {
			fmt.Println(ui.InfoLine("Nothing selected"))
			return
		}
	}

	agent := resolveAgent(installAgent)
	paths, err := config.GetPathsForAgent(agent)
	if err != nil {
		exitWithError(err.Error())
	}
	if err := paths.EnsureDirs(); err != nil {
		exitWithError(err.Error())
	}

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	for _, name := range names {
		s, err := r.Get(name)
		if err != nil {
			exitWithError(err.Error())
		}

		if _, err := install.Install(s, paths, state, r.Root); err != nil {
			exitWithError(err.Error())
		}

		fmt.Println(ui.SuccessLine(fmt.Sprintf("Installed %s for %s", s.Name, agent)))
	}

	if err := config.SaveState(paths.StateFile, state); err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.PageFooter())
}
