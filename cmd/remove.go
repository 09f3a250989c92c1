package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/install"
	"github.com/niuverse/skillbook/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove installed skills",
	Long: `Delete installed skills from an agent's skills directory and drop
them from the install state.

Examples:
  skillbook remove pdf-processing
  skillbook remove pdf-processing --agent opencode`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRemove,
}

var removeAgent string

func init() {
	removeCmd.Flags().StringVar(&removeAgent, "agent", "", "Target agent (default: detected)")
}

func runRemove(cmd *cobra.Command, args []string) {
	agent := resolveAgent(removeAgent)

	paths, err := config.GetPathsForAgent(agent)
	if err != nil {
		exitWithError(err.Error())
	}

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	for _, name := range args {
		rec := state.FindInstalled(name, agent)
		if rec == nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("%s is not installed for %s", name, agent)))
			continue
		}

		if err := install.Remove(rec, state); err != nil {
			exitWithError(err.Error())
		}
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Removed %s", name)))
	}

	if err := config.SaveState(paths.StateFile, state); err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.PageFooter())
}
