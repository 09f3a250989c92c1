package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/niuverse/skillbook/internal/lint"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"lint", "check"},
	Short:   "Validate the skills repository",
	Long: `Check every skill directory for structural problems.

Errors (missing SKILL.md, broken or incomplete frontmatter, duplicate
names, no references/scripts/assets directory) make the command exit
non-zero. Warnings (naming conventions, dangling links) are reported
but do not fail the run.

Examples:
  skillbook validate
  skillbook validate --json
  skillbook validate --ignore 'draft-*'
  skillbook validate --watch`,
	Run: runValidate,
}

var (
	validateJSON   bool
	validateWatch  bool
	validateIgnore []string
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output findings as JSON")
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "Re-validate on file changes")
	validateCmd.Flags().StringSliceVar(&validateIgnore, "ignore", nil, "Skill directory glob patterns to skip")
}

func runValidate(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	r, err := repo.Open(cwd)
	if err != nil {
		exitWithError(err.Error())
	}

	opts := lint.Options{Ignore: validateIgnore}

	if validateWatch {
		watchValidate(r, opts)
		return
	}

	result, err := lint.Run(r, opts)
	if err != nil {
		exitWithError(err.Error())
	}

	if validateJSON {
		printValidateJSON(result)
	} else {
		printValidateResult(result)
	}

	if result.HasErrors() {
		os.Exit(1)
	}
}

func printValidateJSON(result *lint.Result) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(string(out))
}

func printValidateResult(result *lint.Result) {
	errs := result.Errors()
	warns := result.Warnings()

	fmt.Println()
	fmt.Println(ui.SectionHeader("Validating Skills"))
	fmt.Println()

	if len(result.Findings) == 0 {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("%d skills, no problems found", result.SkillCount)))
		fmt.Println(ui.PageFooter())
		return
	}

	// Group findings per skill for readability
	seen := make(map[string]bool)
	for _, f := range result.Findings {
		if seen[f.Skill] {
			continue
		}
		seen[f.Skill] = true

		skillFindings := result.ForSkill(f.Skill)
		label := f.Skill
		if label == "" {
			label = "(repository)"
		}
		fmt.Printf("  %s\n", ui.RenderHighlight(label))

		for _, sf := range skillFindings {
			switch sf.Severity {
			case lint.SeverityError:
				fmt.Printf("    %s %s %s\n", ui.RenderError("✗"), sf.Message, ui.RenderDim("["+sf.RuleID+"]"))
			default:
				fmt.Printf("    %s %s %s\n", ui.RenderWarning("!"), sf.Message, ui.RenderDim("["+sf.RuleID+"]"))
			}
		}
		fmt.Println()
	}

	summary := fmt.Sprintf("%d skills: %d errors, %d warnings", result.SkillCount, len(errs), len(warns))
	if len(errs) > 0 {
		fmt.Println(ui.ErrorLine(summary))
	} else {
		fmt.Println(ui.WarningLine(summary))
	}
	fmt.Println(ui.PageFooter())
}

// watchValidate re-runs validation whenever the skills tree changes
func watchValidate(r *repo.Repository, opts lint.Options) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		exitWithError(err.Error())
	}
	defer watcher.Close()

	// Watch the skills dir and each skill directory; fsnotify is not
	// recursive, so new subdirectories are added as they appear.
	addWatches := func() {
		_ = watcher.Add(r.SkillsDir())
		_ = filepath.Walk(r.SkillsDir(), func(path string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
				_ = watcher.Add(path)
			}
			return nil
		})
	}
	addWatches()

	run := func() {
		result, err := lint.Run(r, opts)
		if err != nil {
			fmt.Println(ui.ErrorLine(err.Error()))
			return
		}
		printValidateResult(result)
	}

	run()
	fmt.Println(ui.InfoLine("Watching for changes (ctrl-c to stop)"))

	// Debounce bursts of events from editors
	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			log.Debug("fs event", "op", event.Op.String(), "path", event.Name)
			if event.Op.Has(fsnotify.Create) {
				addWatches()
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(300*time.Millisecond, func() {
				run()
				fmt.Println(ui.InfoLine("Watching for changes (ctrl-c to stop)"))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Debug("watch error", "err", err)
		}
	}
}
