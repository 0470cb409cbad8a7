package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/searchdeck/searchdeck/internal/config"
	"github.com/searchdeck/searchdeck/internal/filter"
	"github.com/searchdeck/searchdeck/internal/models"
	"github.com/searchdeck/searchdeck/internal/search"
	"github.com/searchdeck/searchdeck/internal/session"
	"github.com/searchdeck/searchdeck/internal/ui"
	"github.com/searchdeck/searchdeck/pkg/logger"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
)

var (
	cfgFile   string
	oneQuery  string
	useImages bool
	showVer   bool
)

var rootCmd = &cobra.Command{
	Use:   "searchdeck",
	Short: "Terminal client for web and image search",
	Long: `An interactive terminal client for a web-and-image search API.
Queries are paginated, normalized into one result shape and filtered
against configurable keyword and domain blocklists.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVer {
			fmt.Printf("searchdeck %s (built %s)\n", Version, BuildDate)
			return
		}

		cfg := config.Load(cfgFile)

		// Initialize logger
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		defer logger.Sync()

		client := search.NewClient(&cfg.Search)
		if !client.IsAvailable() {
			fmt.Fprintln(os.Stderr, "missing API key: set search.api_key or SEARCHDECK_SEARCH_API_KEY")
			os.Exit(1)
		}

		controller := session.NewController(
			client,
			search.NewNormalizer(cfg.Search.FaviconURLFormat),
			filter.New(&cfg.Filter),
		)

		logger.Info("searchdeck starting",
			zap.String("version", Version),
			zap.Int("page_size", client.PageSize()),
			zap.Int("blocked_keywords", len(cfg.Filter.Keywords)),
			zap.Int("blocked_domains", len(cfg.Filter.Domains)),
		)

		display := ui.NewDisplay()

		if oneQuery != "" {
			runOnce(controller, display, client.PageSize())
			return
		}

		runInteractive(controller, display, client.PageSize())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.Flags().StringVarP(&oneQuery, "query", "q", "", "run one search and exit")
	rootCmd.Flags().BoolVarP(&useImages, "images", "i", false, "search images instead of web pages")
	rootCmd.Flags().BoolVarP(&showVer, "version", "v", false, "show version")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOnce executes a single query from the command line and prints the
// first page
func runOnce(controller *session.Controller, display *ui.Display, pageSize int) {
	ctx := context.Background()
	if useImages {
		controller.SwitchCategory(ctx, models.CategoryImages)
	}
	controller.Submit(ctx, oneQuery)
	display.PrintSession(controller.Session(), pageSize)
}

// runInteractive reads actions from stdin until :quit or EOF
func runInteractive(controller *session.Controller, display *ui.Display, pageSize int) {
	ctx := context.Background()
	display.PrintWelcome(Version)

	if useImages {
		controller.SwitchCategory(ctx, models.CategoryImages)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		display.PrintPrompt(controller.Session().Category)
		if !scanner.Scan() {
			fmt.Println()
			display.PrintGoodbye()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := runCommand(ctx, controller, display, line); quit {
				display.PrintGoodbye()
				return
			}
		} else {
			controller.Submit(ctx, line)
		}

		display.PrintSession(controller.Session(), pageSize)
	}
}

// runCommand handles one ":" action; returns true on :quit
func runCommand(ctx context.Context, controller *session.Controller, display *ui.Display, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":web":
		controller.SwitchCategory(ctx, models.CategoryWeb)
	case ":images":
		controller.SwitchCategory(ctx, models.CategoryImages)
	case ":next", ":n":
		controller.NextPage(ctx)
	case ":prev", ":p":
		controller.PrevPage(ctx)
	case ":page":
		if len(fields) < 2 {
			display.PrintInfo("usage: :page N")
			return false
		}
		page, err := strconv.Atoi(fields[1])
		if err != nil {
			display.PrintInfo("usage: :page N")
			return false
		}
		controller.SetPage(ctx, page)
	default:
		display.PrintInfo("unknown command: " + fields[0])
	}
	return false
}
