// Package detect scans skill documents for setup requirements: tools
// the skill tells the agent to run, packages it installs, and
// environment variables it expects. The doctor command verifies these
// against the local machine.
package detect

import (
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Kind classifies a requirement
type Kind string

const (
	KindCommand Kind = "command" // binary must exist on PATH
	KindPip     Kind = "pip"     // Python package
	KindNPM     Kind = "npm"     // Node package
	KindEnv     Kind = "env"     // environment variable
	KindRuntime Kind = "runtime" // interpreter needed by scripts/
)

// Requirement is one detected setup requirement
type Requirement struct {
	Kind    Kind   `json:"kind"`
	Value   string `json:"value"`             // package, command, or variable name
	Source  string `json:"source"`            // "body" or "scripts/<file>"
	Context string `json:"context,omitempty"` // the line it was found on
}

// VerifyResult is the outcome of checking one requirement
type VerifyResult struct {
	Requirement Requirement
	Satisfied   bool
	Hint        string // remediation hint when unsatisfied
}

var (
	pipInstallRe  = regexp.MustCompile(`pip3?\s+install\s+(?:-U\s+|--upgrade\s+)?([a-zA-Z0-9_.\[\]-]+)`)
	uvAddRe       = regexp.MustCompile(`uv\s+(?:pip\s+install|add)\s+([a-zA-Z0-9_.\[\]-]+)`)
	npmInstallRe  = regexp.MustCompile(`npm\s+(?:install|i)\s+(?:-[gGdD]\s+)?([a-zA-Z0-9@/_-]+)`)
	envExportRe   = regexp.MustCompile(`export\s+([A-Z][A-Z0-9_]+)=`)
	envRefRe      = regexp.MustCompile(`\$\{?([A-Z][A-Z0-9_]{2,})\}?`)
	toolMentionRe = regexp.MustCompile("`(yapf|clang-format|prettier|black|isort|ruff|mkdocs|mypy|pylint|flake8)[` ]")
)

// env vars too generic to report
var ignoredEnvVars = map[string]bool{
	"PATH": true, "HOME": true, "USER": true, "SHELL": true,
	"PWD": true, "TERM": true, "LANG": true, "EDITOR": true,
	"XDG_CONFIG_HOME": true, "XDG_DATA_HOME": true,
	"TMPDIR": true, "TMP": true, "TEMP": true,
}

// interpreterForExt maps script extensions to the interpreter that
// must be on PATH to run them
var interpreterForExt = map[string]string{
	".py":   "python3",
	".sh":   "bash",
	".bash": "bash",
	".js":   "node",
	".mjs":  "node",
	".ts":   "node",
	".rb":   "ruby",
}

// FromBody scans SKILL.md body text for requirements
func FromBody(body string) []Requirement {
	var reqs []Requirement
	seen := make(map[string]bool)

	add := func(kind Kind, value, context string) {
		key := string(kind) + ":" + value
		if seen[key] {
			return
		}
		seen[key] = true
		reqs = append(reqs, Requirement{
			Kind:    kind,
			Value:   value,
			Source:  "body",
			Context: strings.TrimSpace(context),
		})
	}

	for _, line := range strings.Split(body, "\n") {
		for _, m := range pipInstallRe.FindAllStringSubmatch(line, -1) {
			add(KindPip, basePipName(m[1]), line)
		}
		for _, m := range uvAddRe.FindAllStringSubmatch(line, -1) {
			add(KindPip, basePipName(m[1]), line)
		}
		for _, m := range npmInstallRe.FindAllStringSubmatch(line, -1) {
			add(KindNPM, m[1], line)
		}
		for _, m := range toolMentionRe.FindAllStringSubmatch(line, -1) {
			add(KindCommand, m[1], line)
		}
		for _, m := range envExportRe.FindAllStringSubmatch(line, -1) {
			if !ignoredEnvVars[m[1]] {
				add(KindEnv, m[1], line)
			}
		}
		for _, m := range envRefRe.FindAllStringSubmatch(line, -1) {
			if !ignoredEnvVars[m[1]] {
				add(KindEnv, m[1], line)
			}
		}
	}

	return reqs
}

// basePipName strips extras like package[full] down to package
func basePipName(name string) string {
	if i := strings.Index(name, "["); i >= 0 {
		return name[:i]
	}
	return name
}

// FromScripts infers interpreter requirements from script file extensions
func FromScripts(scripts []string) []Requirement {
	var reqs []Requirement
	seen := make(map[string]bool)

	for _, path := range scripts {
		lower := strings.ToLower(path)
		for ext, interp := range interpreterForExt {
			if strings.HasSuffix(lower, ext) && !seen[interp] {
				seen[interp] = true
				reqs = append(reqs, Requirement{
					Kind:   KindRuntime,
					Value:  interp,
					Source: path,
				})
			}
		}
	}

	return reqs
}

// Merge combines requirement lists, deduplicating by kind and value
func Merge(lists ...[]Requirement) []Requirement {
	seen := make(map[string]bool)
	var out []Requirement

	for _, list := range lists {
		for _, req := range list {
			key := string(req.Kind) + ":" + req.Value
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, req)
		}
	}

	return out
}

// Verify checks whether a requirement is satisfied on this machine
func Verify(req Requirement) VerifyResult {
	result := VerifyResult{Requirement: req}

	switch req.Kind {
	case KindCommand, KindRuntime:
		_, err := exec.LookPath(req.Value)
		result.Satisfied = err == nil
		if !result.Satisfied {
			result.Hint = "command not found: " + req.Value
		}

	case KindEnv:
		result.Satisfied = os.Getenv(req.Value) != ""
		if !result.Satisfied {
			result.Hint = "environment variable not set: " + req.Value
		}

	case KindPip:
		module := strings.ReplaceAll(req.Value, "-", "_")
		cmd := exec.Command("python3", "-c", "import "+module)
		result.Satisfied = cmd.Run() == nil
		if !result.Satisfied {
			result.Hint = "python package missing; run: pip install " + req.Value
		}

	case KindNPM:
		cmd := exec.Command("node", "-e", "require('"+req.Value+"')")
		result.Satisfied = cmd.Run() == nil
		if !result.Satisfied {
			result.Hint = "node package missing; run: npm install " + req.Value
		}

	default:
		result.Satisfied = true
	}

	return result
}

// VerifyAll checks every requirement
func VerifyAll(reqs []Requirement) []VerifyResult {
	results := make([]VerifyResult, len(reqs))
	for i, req := range reqs {
		results[i] = Verify(req)
	}
	return results
}

// HasUnsatisfied reports whether any result failed
func HasUnsatisfied(results []VerifyResult) bool {
	for _, r := range results {
		if !r.Satisfied {
			return true
		}
	}
	return false
}
