package cmd

import (
	"fmt"
	u "net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipzo/clipzo/internal/config"
	"github.com/clipzo/clipzo/internal/history"
	"github.com/clipzo/clipzo/internal/output"
	"github.com/clipzo/clipzo/internal/scheduler"
	"github.com/clipzo/clipzo/internal/utils"
)

var (
	workers       int
	connections   int
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	headers       []string
	debug         bool

	globalHTTPConfig utils.HTTPClientConfig
	appConfig        *config.Config
)

var ClipzoVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "clipzo",
	Short:   "Clipzo downloads time-range clips from media sources",
	Version: ClipzoVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		cfg, err := config.Load()
		if err != nil {
			output.PrintError(fmt.Sprintf("Error loading configuration: %v", err))
			os.Exit(1)
		}
		appConfig = cfg
		if userAgent == "randomize" {
			userAgent = utils.GetRandomUserAgent()
		}
		if userAgent == "" && cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
		// Check if proxy URL contains auth
		parsedProxy, err := u.Parse(proxyURL)
		if err == nil && parsedProxy.User != nil && proxyUsername == "" {
			proxyUsername = parsedProxy.User.Username()
			if password, set := parsedProxy.User.Password(); set {
				proxyPassword = password
			}
			// Remove auth from URL to send in clientConfig
			parsedProxy.User = nil
			proxyURL = parsedProxy.String()
		}
		globalHTTPConfig = utils.HTTPClientConfig{
			Timeout:        timeout,
			KATimeout:      kaTimeout,
			ProxyURL:       proxyURL,
			ProxyUsername:  proxyUsername,
			ProxyPassword:  proxyPassword,
			UserAgent:      userAgent,
			Headers:        utils.ParseHeaderArgs(headers),
			HighThreadMode: connections > 5,
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openHistory opens the history store; a broken store degrades to no history
// rather than blocking downloads.
func openHistory() *history.Store {
	store, err := history.Open(appConfig.HistoryPath)
	if err != nil {
		log.Warn().Str("op", "cmd/root").Err(err).Msg("History store unavailable, clips will not be recorded")
		return nil
	}
	return store
}

func runJobs(jobs []utils.ClipJob) {
	for i := range jobs {
		if appConfig.FFmpegPath != "" {
			jobs[i].Metadata["ffmpegPathOverride"] = appConfig.FFmpegPath
		}
		if appConfig.TempDir != "" {
			jobs[i].Metadata["tempDir"] = appConfig.TempDir
		}
	}
	store := openHistory()
	if store != nil {
		defer store.Close()
	}
	if err := scheduler.Run(jobs, workers, store); err != nil {
		fmt.Println()
		output.PrintError("Encountered failed operation(s)")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "Number of clips to download in parallel")
	rootCmd.PersistentFlags().IntVarP(&connections, "connections", "c", 8, "Number of connections per download (above 5 enables high-thread-mode)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")
	rootCmd.PersistentFlags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	rootCmd.PersistentFlags().StringVarP(&userAgent, "user-agent", "a", "", "User agent ('randomize' picks one)")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	rootCmd.PersistentFlags().StringVar(&proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringVar(&proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers (like 'Authorization: Basic dXNlcjpwYXNz'); can be specified multiple times")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newYTCmd())
	rootCmd.AddCommand(newHTTPCmd())
	rootCmd.AddCommand(newS3Cmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newCleanCmd())
}
