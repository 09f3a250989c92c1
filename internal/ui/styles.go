package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// ═══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Field notebook on a dark desk
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Primary palette
	Teal   = lipgloss.Color("#2DD4BF") // Bright teal
	Sky    = lipgloss.Color("#38BDF8") // Clear sky blue
	Indigo = lipgloss.Color("#818CF8") // Soft indigo
	Lime   = lipgloss.Color("#A3E635") // Fresh lime
	Green  = lipgloss.Color("#4ADE80") // Signal green
	Amber  = lipgloss.Color("#FBBF24") // Warning amber
	Orange = lipgloss.Color("#FB923C") // Deep orange
	Rose   = lipgloss.Color("#FB7185") // Error rose

	// Neutrals
	White     = lipgloss.Color("#F8FAFC")
	LightGray = lipgloss.Color("#CBD5E1")
	Gray      = lipgloss.Color("#94A3B8")
	DarkGray  = lipgloss.Color("#64748B")
	Slate     = lipgloss.Color("#334155")
)

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT STYLES
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Title for primary headings
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	// Subtitle for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Sky)

	// Success messages
	Success = lipgloss.NewStyle().
		Foreground(Green)

	// Error messages
	Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Warning messages
	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	// Info messages
	Info = lipgloss.NewStyle().
		Foreground(Sky)

	// Muted/secondary text
	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	// Dim - even more subtle
	Dim = lipgloss.NewStyle().
		Foreground(DarkGray)

	// Highlight for important items
	Highlight = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	// Code/command style
	Code = lipgloss.NewStyle().
		Foreground(Indigo)
)

// ═══════════════════════════════════════════════════════════════════════════════
// BADGES
// ═══════════════════════════════════════════════════════════════════════════════

var baseBadge = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true)

// SkillBadge returns the skill badge
func SkillBadge() string {
	if !IsTTY {
		return "[SKILL]"
	}
	return baseBadge.Background(Indigo).Foreground(White).Render("✦ SKILL")
}

// RefBadge returns the references badge
func RefBadge() string {
	if !IsTTY {
		return "[REF]"
	}
	return baseBadge.Background(Sky).Foreground(White).Render("◈ REF")
}

// ScriptBadge returns the scripts badge
func ScriptBadge() string {
	if !IsTTY {
		return "[SCRIPT]"
	}
	return baseBadge.Background(Orange).Foreground(White).Render("⚙ SCRIPT")
}

// AssetBadge returns the assets badge
func AssetBadge() string {
	if !IsTTY {
		return "[ASSET]"
	}
	return baseBadge.Background(Teal).Foreground(White).Render("⬡ ASSET")
}

// StatusOK returns the success status badge
func StatusOK() string {
	if !IsTTY {
		return "[OK]"
	}
	return baseBadge.Background(Green).Foreground(White).Render("✓")
}

// StatusWarn returns the warning status badge
func StatusWarn() string {
	if !IsTTY {
		return "[!]"
	}
	return baseBadge.Background(Amber).Foreground(White).Render("!")
}

// StatusError returns the error status badge
func StatusError() string {
	if !IsTTY {
		return "[ERR]"
	}
	return baseBadge.Background(Rose).Foreground(White).Render("✗")
}

// ═══════════════════════════════════════════════════════════════════════════════
// DECORATIVE ELEMENTS
// ═══════════════════════════════════════════════════════════════════════════════

// Divider returns a horizontal divider
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(DarkGray).
		Render(strings.Repeat("─", width))
}

// SectionHeader creates a decorated section header
func SectionHeader(title string) string {
	// Plain output for non-TTY environments
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	// Use terminal width, capped at 80
	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	titleStyled := lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft

	left := lipgloss.NewStyle().Foreground(DarkGray).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(DarkGray).Render(" ├" + strings.Repeat("─", padRight))

	return left + titleStyled + right
}

// ═══════════════════════════════════════════════════════════════════════════════
// STATUS LINE COMPONENTS
// ═══════════════════════════════════════════════════════════════════════════════

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Green)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Rose)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Amber)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Sky)
}

// ═══════════════════════════════════════════════════════════════════════════════
// EMPTY STATES
// ═══════════════════════════════════════════════════════════════════════════════

// EmptyRepo returns a friendly empty state
func EmptyRepo() string {
	if !IsTTY {
		return "\n  (empty)\n\n  No skills yet.\n  Use `skillbook new <name>` to create one.\n"
	}

	folder := lipgloss.NewStyle().Foreground(DarkGray).Render(`
      ┌─────────────┐
      │             │
      │   (empty)   │
      │             │
      └─────────────┘`)

	message := lipgloss.NewStyle().Foreground(Gray).Render("No skills yet.")
	hint := Code.Render("skillbook new <name>")

	return fmt.Sprintf("%s\n\n  %s\n  Use %s to create one.\n", folder, message, hint)
}

// NoResults returns a friendly no-results state
func NoResults(query string) string {
	if !IsTTY {
		return fmt.Sprintf("\n  No skills found for \"%s\"\n  Try broader search terms\n", query)
	}

	icon := lipgloss.NewStyle().Foreground(DarkGray).Render("🔍")
	message := lipgloss.NewStyle().Foreground(Gray).Render(fmt.Sprintf("No skills found for \"%s\"", query))
	hint := lipgloss.NewStyle().Foreground(Teal).Render("Try broader search terms")

	return fmt.Sprintf("\n  %s %s\n  %s\n", icon, message, hint)
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════════════════

// Truncate truncates text to max runes with ellipsis
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// WrapText wraps text to fit within maxWidth, returning multiple lines.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= maxWidth {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}

// Render applies a lipgloss style to text, returning plain text in non-TTY environments.
func Render(style lipgloss.Style, text string) string {
	if !IsTTY {
		return text
	}
	return style.Render(text)
}

// RenderMuted renders text in muted style (TTY-aware)
func RenderMuted(text string) string {
	return Render(Muted, text)
}

// RenderDim renders text in dim style (TTY-aware)
func RenderDim(text string) string {
	return Render(Dim, text)
}

// RenderHighlight renders text in highlight style (TTY-aware)
func RenderHighlight(text string) string {
	return Render(Highlight, text)
}

// RenderSuccess renders text in success style (TTY-aware)
func RenderSuccess(text string) string {
	return Render(Success, text)
}

// RenderError renders text in error style (TTY-aware)
func RenderError(text string) string {
	return Render(Error, text)
}

// RenderWarning renders text in warning style (TTY-aware)
func RenderWarning(text string) string {
	return Render(Warning, text)
}

// RenderInfo renders text in info style (TTY-aware)
func RenderInfo(text string) string {
	return Render(Info, text)
}

// TerminalWidth returns the current terminal width, defaulting to 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// DescriptionWidth returns the recommended width for descriptions based on terminal size
func DescriptionWidth() int {
	w := TerminalWidth()
	desc := w - 8
	if desc < 40 {
		return 40
	}
	return desc
}

// ═══════════════════════════════════════════════════════════════════════════════
// PAGE TEMPLATES
// ═══════════════════════════════════════════════════════════════════════════════

// PageHeader creates a consistent page header
func PageHeader(title string) string {
	if !IsTTY {
		return fmt.Sprintf("\n  %s\n", title)
	}
	icon := lipgloss.NewStyle().Foreground(Teal).Render("📒")
	return fmt.Sprintf("\n  %s %s\n", icon, Title.Render(title))
}

// PageFooter creates a consistent page footer matching the header width
func PageFooter() string {
	// Plain output for non-TTY environments
	if !IsTTY {
		return "\n"
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}
	padSide := (width - 5) / 2
	left := strings.Repeat("─", padSide)
	right := strings.Repeat("─", width-padSide-5)
	line := lipgloss.NewStyle().Foreground(DarkGray).Render(left + " ✦ " + right)
	return "\n" + line + "\n"
}
