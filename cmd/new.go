package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/scaffold"
	"github.com/niuverse/skillbook/internal/skill"
	"github.com/niuverse/skillbook/internal/ui"
)

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"create", "add"},
	Short:   "Create a new skill",
	Long: `Create a skill directory with a templated SKILL.md.

The name must be kebab-case: lowercase letters, digits, and hyphens.

Examples:
  skillbook new pdf-processing
  skillbook new git-worktrees --description "Manage parallel git worktrees"`,
	Args: cobra.ExactArgs(1),
	Run:  runNew,
}

var newDescription string

func init() {
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Skill description with trigger keywords")
}

func runNew(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	dir, err := scaffold.NewSkill(r.SkillsDir(), args[0], newDescription)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println(ui.SuccessLine(fmt.Sprintf("Created skill %s", args[0])))
	fmt.Println(ui.InfoLine(fmt.Sprintf("Edit %s/%s to fill in the details", dir, skill.Filename)))
}
