package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
)

func newArticlesCommand(e *env) *cobra.Command {
	var interval string
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List aggregated articles across all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := e.client()
			if err != nil {
				return err
			}
			articles, err := client.GetArticles(cmd.Context(), interval)
			if err != nil {
				return err
			}
			if e.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), articles)
			}
			renderArticles(cmd.OutOrStdout(), articles)
			return nil
		},
	}
	cmd.Flags().StringVar(&interval, "interval", "", "time window, e.g. 1h or 24h")
	_ = cmd.MarkFlagRequired("interval")
	return cmd
}

func newSentimentCommand(e *env) *cobra.Command {
	var interval, source, category string
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Show sentiment analysis for all sources or a single one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source == "" && category != "" {
				return clienterr.Config("--category requires --source")
			}
			client, err := e.client()
			if err != nil {
				return err
			}

			var result cryptonews.SentimentResult
			if source == "" {
				result, err = client.GetArticlesSentiment(cmd.Context(), interval)
			} else {
				var src cryptonews.Source
				if src, err = cryptonews.ParseSource(source); err != nil {
					return err
				}
				var req cryptonews.SentimentRequest
				if req, err = cryptonews.NewSentimentRequest(src, interval, category); err != nil {
					return err
				}
				result, err = client.GetSentiment(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			if e.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderSentiment(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&interval, "interval", "", "time window, e.g. 1h or 24h")
	cmd.Flags().StringVar(&source, "source", "", "restrict to one source (e.g. DECRYPT)")
	cmd.Flags().StringVar(&category, "category", "", "source category; requires --source")
	_ = cmd.MarkFlagRequired("interval")
	return cmd
}

func newNewsCommand(e *env) *cobra.Command {
	var (
		source string
		opts   cryptonews.ListOptions
		filter cryptonews.NewsFilter
		pick   bool
	)
	cmd := &cobra.Command{
		Use:   "news",
		Short: "List one page of news from a source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := cryptonews.ParseSource(source)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("editor-pick") {
				filter.IsEditorPick = &pick
			}
			req, err := cryptonews.NewNewsRequest(src, opts, filter)
			if err != nil {
				return err
			}

			client, err := e.client()
			if err != nil {
				return err
			}
			page, err := client.GetNews(cmd.Context(), req)
			if err != nil {
				return err
			}

			if e.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			renderArticles(cmd.OutOrStdout(), page.Articles)
			if page.HasMore {
				fmt.Fprintln(cmd.OutOrStdout(), "more results available")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&source, "source", "", "news source (e.g. COINTELEGRAPH, coin-desk)")
	f.StringVar(&filter.Category, "category", "", "source category")
	f.IntVar(&opts.Page, "page", 0, "page number (default 1)")
	f.IntVar(&opts.Limit, "limit", 0, "page size (default 10)")
	f.StringVar(&opts.Search, "search", "", "full-text search")
	f.StringVar(&opts.PaginationToken, "token", "", "pagination token from a previous page")
	f.StringVar(&filter.Sort, "sort", "", "sort order (DECRYPT only)")
	f.BoolVar(&pick, "editor-pick", false, "only editor picks (DECRYPT only)")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func newDetailCommand(e *env) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "detail IDENTIFIER",
		Short: "Fetch one article by slug, id or url depending on the source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := cryptonews.ParseSource(source)
			if err != nil {
				return err
			}
			req, err := cryptonews.NewDetailRequest(src, args[0])
			if err != nil {
				return err
			}

			client, err := e.client()
			if err != nil {
				return err
			}
			detail, err := client.GetNewsDetail(cmd.Context(), req)
			if err != nil {
				return err
			}

			if e.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), detail)
			}
			renderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "news source with detail support")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func newSourcesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), cryptonews.Sources())
			}
			renderSources(cmd.OutOrStdout(), cryptonews.Sources())
			return nil
		},
	}
}
