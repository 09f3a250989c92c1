package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/detect"
	"github.com/niuverse/skillbook/internal/install"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/skill"
	"github.com/niuverse/skillbook/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [name]",
	Short: "Check skill requirements and installed copies",
	Long: `Verify that skills' detected setup requirements (commands, Python
packages, environment variables) are satisfied, and that installed
copies have not drifted from their recorded state.

If no skill name is given, checks every skill in the repository.

Examples:
  skillbook doctor
  skillbook doctor pdf-processing`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDoctor,
}

var doctorAgent string

func init() {
	doctorCmd.Flags().StringVar(&doctorAgent, "agent", "", "Agent whose installs to check (default: detected)")
}

func runDoctor(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	agent := resolveAgent(doctorAgent)
	paths, err := config.GetPathsForAgent(agent)
	if err != nil {
		exitWithError(err.Error())
	}
	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Checking Skills"))
	fmt.Println()

	var skills []*skillCheck
	if len(args) == 1 {
		s, err := r.Get(args[0])
		if err != nil {
			exitWithError(err.Error())
		}
		skills = append(skills, &skillCheck{skill: s, verbose: true})
	} else {
		all, err := r.Scan()
		if err != nil {
			exitWithError(err.Error())
		}
		for _, s := range all {
			skills = append(skills, &skillCheck{skill: s})
		}
	}

	unhealthy := 0
	for _, check := range skills {
		if !checkSkill(check, state, agent) {
			unhealthy++
		}
		fmt.Println()
	}

	if unhealthy > 0 {
		fmt.Println(ui.ErrorLine(fmt.Sprintf("%d of %d skills need attention", unhealthy, len(skills))))
	} else {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("All %d skills healthy", len(skills))))
	}
	fmt.Println(ui.PageFooter())
}

type skillCheck struct {
	skill   *skill.Skill
	verbose bool
}

// checkSkill reports one skill's requirement and drift status.
// Returns false when anything needs attention.
func checkSkill(check *skillCheck, state *config.State, agent config.Agent) bool {
	s := check.skill
	reqs := detect.Merge(detect.FromBody(s.Body), detect.FromScripts(s.Scripts))
	results := detect.VerifyAll(reqs)
	reqsOK := !detect.HasUnsatisfied(results)

	rec := state.FindInstalled(s.Name, agent)
	drift := install.StatusOK
	if rec != nil {
		drift = install.CheckDrift(rec)
	}
	healthy := reqsOK && drift == install.StatusOK

	switch {
	case healthy:
		fmt.Printf("  %s %s\n", ui.StatusOK(), ui.RenderHighlight(s.Name))
	case reqsOK && drift == install.StatusModified:
		fmt.Printf("  %s %s\n", ui.StatusWarn(), ui.RenderHighlight(s.Name))
	default:
		fmt.Printf("  %s %s\n", ui.StatusError(), ui.RenderHighlight(s.Name))
	}

	for _, res := range results {
		if res.Satisfied {
			if check.verbose {
				fmt.Printf("    %s %s: %s\n", ui.RenderSuccess("✓"), res.Requirement.Kind, res.Requirement.Value)
			}
		} else {
			fmt.Printf("    %s %s: %s\n", ui.RenderError("✗"), res.Requirement.Kind, res.Requirement.Value)
			if res.Hint != "" {
				fmt.Println(ui.RenderMuted("      " + res.Hint))
			}
		}
	}

	if rec != nil {
		switch drift {
		case install.StatusModified:
			fmt.Printf("    %s installed copy for %s has been modified\n", ui.RenderWarning("!"), agent)
		case install.StatusMissing:
			fmt.Printf("    %s installed copy for %s is missing\n", ui.RenderError("✗"), agent)
		default:
			if check.verbose {
				fmt.Printf("    %s installed for %s\n", ui.RenderSuccess("✓"), agent)
			}
		}
	} else if check.verbose {
		fmt.Println(ui.RenderMuted(fmt.Sprintf("    not installed for %s", agent)))
	}

	return healthy
}
