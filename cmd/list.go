package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/install"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/skill"
	"github.com/niuverse/skillbook/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List skills in the repository",
	Long: `Display all skills in the repository with their descriptions.

With --installed, lists skills installed for an agent instead.`,
	Run: runList,
}

var (
	listInstalled bool
	listAgent     string
	listShort     bool
	listJSON      bool
)

func init() {
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "List installed skills instead of repository skills")
	listCmd.Flags().StringVar(&listAgent, "agent", "", "Agent to list installed skills for (default: detected)")
	listCmd.Flags().BoolVar(&listShort, "short", false, "Truncate descriptions to one line")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output skill summaries as JSON")
}

func runList(cmd *cobra.Command, args []string) {
	if listInstalled {
		listInstalledSkills()
		return
	}

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

	if listJSON {
		printListJSON(skills)
		return
	}

	if len(skills) == 0 {
		fmt.Print(ui.EmptyRepo())
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Skills"))
	fmt.Println()

	descWidth := ui.DescriptionWidth()
	for _, s := range skills {
		fmt.Printf("  %s %s\n", ui.SkillBadge(), ui.RenderHighlight(s.Name))

		desc := s.Description
		if listShort {
			fmt.Printf("     %s\n", ui.RenderMuted(s.ShortDescription(descWidth)))
		} else {
			for _, line := range ui.WrapText(desc, descWidth) {
				fmt.Printf("     %s\n", ui.RenderMuted(line))
			}
		}

		var extras []string
		if n := len(s.References); n > 0 {
			extras = append(extras, fmt.Sprintf("%d references", n))
		}
		if n := len(s.Scripts); n > 0 {
			extras = append(extras, fmt.Sprintf("%d scripts", n))
		}
		if n := len(s.Assets); n > 0 {
			extras = append(extras, fmt.Sprintf("%d assets", n))
		}
		if len(extras) > 0 {
			line := extras[0]
			for _, e := range extras[1:] {
				line += " · " + e
			}
			fmt.Printf("     %s\n", ui.RenderDim(line))
		}
		fmt.Println()
	}

	fmt.Printf("  %s\n", ui.RenderDim(fmt.Sprintf("%d skills", len(skills))))
	fmt.Println(ui.PageFooter())
}

func printListJSON(skills []*skill.Skill) {
	summaries := make([]skill.Summary, 0, len(skills))
	for _, s := range skills {
		sum := skill.Summary{
			Name:        s.Name,
			Description: s.ShortDescription(ui.DescriptionWidth()),
			Dir:         s.Dir,
		}
		if hash, err := install.HashFile(filepath.Join(s.Dir, skill.Filename)); err == nil {
			sum.Hash = hash
		}
		summaries = append(summaries, sum)
	}

	out, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(string(out))
}

func listInstalledSkills() {
	agent := resolveAgent(listAgent)

	paths, err := config.GetPathsForAgent(agent)
	if err != nil {
		exitWithError(err.Error())
	}

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader(fmt.Sprintf("Installed for %s", agent)))
	fmt.Println()

	if len(state.Installed) == 0 {
		fmt.Println(ui.RenderMuted("  No skills installed"))
		fmt.Println(ui.PageFooter())
		return
	}

	for _, rec := range state.Installed {
		fmt.Printf("  %s %s\n", ui.SkillBadge(), ui.RenderHighlight(rec.Name))
		fmt.Printf("     %s\n", ui.RenderMuted(ui.Truncate(rec.Description, ui.DescriptionWidth())))
		fmt.Printf("     %s\n", ui.RenderDim("from "+rec.Source))
	}

	fmt.Println(ui.PageFooter())
}

// resolveAgent maps a flag value to an agent, defaulting to detection
func resolveAgent(flag string) config.Agent {
	if flag == "" {
		return config.DefaultAgent()
	}
	agent := config.GetAgentConfig(config.Agent(flag))
	if agent == nil {
		exitWithError(fmt.Sprintf("unknown agent '%s'", flag))
	}
	return agent.Name
}
