package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/searchdeck/searchdeck/internal/models"
	"github.com/searchdeck/searchdeck/internal/session"
)

// Display renders session state to the terminal
type Display struct {
	width int
}

// NewDisplay creates a display sized to the current terminal
func NewDisplay() *Display {
	return &Display{width: terminalWidth()}
}

// Color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// PrintWelcome displays the startup banner and available commands
func (d *Display) PrintWelcome(version string) {
	fmt.Printf("%s%ssearchdeck %s%s\n", colorBold, colorCyan, version, colorReset)
	fmt.Printf("%sCommands:%s :web | :images | :next | :prev | :page N | :quit\n", colorGray, colorReset)
	fmt.Printf("%sAnything else runs as a search query.%s\n\n", colorGray, colorReset)
}

// PrintPrompt displays the input prompt with the active category
func (d *Display) PrintPrompt(category models.Category) {
	fmt.Printf("%s%s[%s]%s ❯ ", colorBold, colorGreen, category, colorReset)
}

// PrintSeparator prints a visual separator
func (d *Display) PrintSeparator() {
	line := strings.Repeat("─", min(d.width, 80))
	fmt.Printf("%s%s%s\n", colorDim, line, colorReset)
}

// PrintSession renders the current page of results with the pagination
// footer
func (d *Display) PrintSession(s session.Session, pageSize int) {
	switch s.Status {
	case session.StatusLoading:
		fmt.Printf("%sSearching...%s\n", colorDim, colorReset)
		return
	case session.StatusError:
		fmt.Printf("%s✗ %s%s\n", colorRed, s.ErrMessage, colorReset)
		if len(s.Results) == 0 {
			return
		}
		// Fall through to the last-good page below
	}

	if !s.HasSearched {
		return
	}

	if len(s.Results) == 0 {
		fmt.Printf("%sNo results for %q.%s\n", colorYellow, s.Query, colorReset)
		return
	}

	d.PrintSeparator()
	base := (s.CurrentPage - 1) * pageSize
	for i, r := range s.Results {
		d.printResult(base+i+1, r, s.Category)
	}
	d.PrintSeparator()

	fmt.Printf("%sPage %d of %d · about %d results%s\n",
		colorGray, s.CurrentPage, s.TotalPages(pageSize), s.TotalResults, colorReset)
}

// printResult renders one hit. Image results show thumbnail and content
// links instead of a snippet.
func (d *Display) printResult(index int, r models.Result, category models.Category) {
	fmt.Printf("%s%2d.%s %s%s%s\n", colorGray, index, colorReset, colorBold, r.Name, colorReset)
	fmt.Printf("    %s%s%s\n", colorBlue, truncate(r.DisplayURL, d.width-8), colorReset)

	if category == models.CategoryImages {
		if r.ThumbnailURL != "" {
			fmt.Printf("    %sthumb: %s%s\n", colorGray, truncate(r.ThumbnailURL, d.width-14), colorReset)
		}
		if r.ContentURL != "" {
			fmt.Printf("    %simage: %s%s\n", colorGray, truncate(r.ContentURL, d.width-14), colorReset)
		}
	} else if r.Snippet != "" {
		fmt.Printf("    %s\n", truncate(r.Snippet, d.width-6))
	}

	if r.FaviconURL != "" {
		fmt.Printf("    %sicon:  %s%s\n", colorDim, truncate(r.FaviconURL, d.width-14), colorReset)
	}
	fmt.Println()
}

// PrintInfo displays an info message
func (d *Display) PrintInfo(msg string) {
	fmt.Printf("%sℹ %s%s\n", colorCyan, msg, colorReset)
}

// PrintError displays an error message
func (d *Display) PrintError(err error) {
	fmt.Printf("%s✗ Error: %v%s\n", colorRed, err, colorReset)
}

// PrintGoodbye displays the exit message
func (d *Display) PrintGoodbye() {
	fmt.Printf("%sBye.%s\n", colorGray, colorReset)
}

// Helper functions

func truncate(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
