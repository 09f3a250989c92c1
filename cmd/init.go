package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/scaffold"
	"github.com/niuverse/skillbook/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new skills repository",
	Long: `Create a skills repository with a manifest, README, and an empty
skills directory.

Examples:
  skillbook init                  # Initialize the current directory
  skillbook init my-skills        # Initialize ./my-skills`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInit,
}

var (
	initName        string
	initDescription string
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Repository name (defaults to the directory name)")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Repository description")
}

func runInit(cmd *cobra.Command, args []string) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(err.Error())
	}

	if err := scaffold.InitRepo(dir, initName, initDescription); err != nil {
		exitWithError(err.Error())
	}

	fmt.Println(ui.SuccessLine(fmt.Sprintf("Initialized skills repository in %s", dir)))
	fmt.Println(ui.InfoLine("Add your first skill with: skillbook new <name>"))
}
