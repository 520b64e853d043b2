// Package cli implements the cryptonews command-line client on top of the SDK.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/samvad-hq/crypto-news-sdk/internal/logger"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/httpclient"
)

const (
	keyAPIKey    = "api_key"
	keyBaseURL   = "api_base_url"
	keyTimeoutMs = "api_timeout_ms"
	keyDebug     = "debug"
	keyJSON      = "json"
)

// Execute loads configs/.env and runs the root command.
func Execute(ctx context.Context) error {
	_ = godotenv.Load("configs/.env")
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Flags take precedence over the
// API_KEY, API_BASE_URL and API_TIMEOUT_MS environment variables.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetDefault(keyBaseURL, httpclient.DefaultBaseURL)
	v.SetDefault(keyTimeoutMs, int(httpclient.DefaultTimeout/time.Millisecond))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "cryptonews",
		Short:         "Query crypto news sources through the Crypto News API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-key", "", "RapidAPI key (env API_KEY)")
	flags.String("base-url", httpclient.DefaultBaseURL, "API base URL (env API_BASE_URL)")
	flags.Int("timeout-ms", int(httpclient.DefaultTimeout/time.Millisecond), "request timeout in milliseconds (env API_TIMEOUT_MS)")
	flags.Bool("json", false, "print raw JSON instead of tables")
	flags.Bool("debug", false, "log SDK requests to stderr")
	_ = v.BindPFlag(keyAPIKey, flags.Lookup("api-key"))
	_ = v.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = v.BindPFlag(keyTimeoutMs, flags.Lookup("timeout-ms"))
	_ = v.BindPFlag(keyJSON, flags.Lookup("json"))
	_ = v.BindPFlag(keyDebug, flags.Lookup("debug"))

	e := &env{v: v}
	root.AddCommand(
		newArticlesCommand(e),
		newSentimentCommand(e),
		newNewsCommand(e),
		newDetailCommand(e),
		newSourcesCommand(e),
	)
	return root
}

// env resolves settings lazily, after cobra has parsed flags.
type env struct {
	v *viper.Viper
}

func (e *env) jsonOutput() bool { return e.v.GetBool(keyJSON) }

func (e *env) client() (*cryptonews.Client, error) {
	var log cryptonews.Logger = logger.NopLogger{}
	if e.v.GetBool(keyDebug) {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("init debug logger: %w", err)
		}
		log = logger.NewZapLogger(l)
	}

	return cryptonews.New(cryptonews.Options{
		APIKey:  strings.TrimSpace(e.v.GetString(keyAPIKey)),
		BaseURL: strings.TrimSpace(e.v.GetString(keyBaseURL)),
		Timeout: time.Duration(e.v.GetInt(keyTimeoutMs)) * time.Millisecond,
		Logger:  log,
	})
}
