// Package cli implements the mentorsphere command line tool. It is a
// thin shell over the root client: the file-backed session store gives
// the CLI the same persisted-session behavior as the web app, so a
// login survives across invocations until logout or a backend 401.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mentorsphere "github.com/mentorsphere/mentorsphere-go"
)

var (
	flagConfig  string
	flagBaseURL string
	flagDir     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mentorsphere",
	Short: "MentorSphere session and dashboard CLI",
	Long: `mentorsphere talks to a MentorSphere backend with the same session
semantics as the web app: one persisted session per profile directory,
cleared on logout or when the backend rejects the stored token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "backend root URL, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "session directory (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log API activity to stderr")
}

// loadConfig resolves the effective configuration from flags and the
// optional config file.
func loadConfig() (mentorsphere.Config, error) {
	cfg := mentorsphere.DefaultConfig()
	if flagConfig != "" {
		loaded, err := mentorsphere.LoadConfig(flagConfig)
		if err != nil {
			return mentorsphere.Config{}, err
		}
		cfg = loaded
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = os.Getenv("MENTORSPHERE_API_URL")
	}
	cfg.Storage.Backend = mentorsphere.BackendFile
	if flagDir != "" {
		cfg.Storage.Dir = flagDir
	}
	if cfg.API.BaseURL == "" {
		return mentorsphere.Config{}, fmt.Errorf("backend URL required (--base-url, config file, or MENTORSPHERE_API_URL)")
	}
	return cfg, nil
}
