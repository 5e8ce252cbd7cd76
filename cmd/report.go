package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/issue-report/internal/config"
	"github.com/naka-gawa/issue-report/internal/gateway"
	"github.com/naka-gawa/issue-report/internal/render"
	"github.com/naka-gawa/issue-report/internal/usecase"
)

// newReportCmd builds the report command. Flags are bound to v, so they take
// precedence over the config file and the environment.
func newReportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report owner/repository [owner/repository...]",
		Short: "Reports the issues of repositories and their top day",
		Long: `Fetches the issues of every given repository and prints them ordered by
creation time, together with the day on which most issues were created and
how many of them each repository contributed that day.

Repositories that cannot be fetched are reported on stderr and counted as
having no issues. The command fails only when no repository could be fetched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			configPath, _ := cmd.Flags().GetString("config")
			if err := config.ReadFile(v, configPath); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			renderer, err := render.New(cfg.Format)
			if err != nil {
				return err
			}

			// Inject dependencies and run the main business logic.
			source, err := newIssueSource(cfg, logger)
			if err != nil {
				return err
			}
			reporter := usecase.NewReporter(source, logger,
				usecase.WithConcurrency(cfg.Concurrency),
				usecase.WithSummary(cfg.Summary),
			)

			result, err := reporter.Generate(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", warning)
			}

			return renderer.Render(cmd.OutOrStdout(), result.Report)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyAPI, config.APIREST, "GitHub API to use: rest or graphql")
	flags.String(config.KeySnapshot, "", "Read issues from a JSON snapshot file instead of GitHub")
	flags.String(config.KeyState, gateway.StateOpen, "Issue state to fetch: open, closed or all")
	flags.Bool(config.KeyIncludePulls, false, "Include pull requests (REST API only)")
	flags.StringP(config.KeyFormat, "f", render.FormatJSON, "Output format: json or yaml")
	flags.Bool(config.KeySummary, false, "Add per-day statistics to the report")
	flags.Int(config.KeyConcurrency, usecase.DefaultConcurrency, "Number of repositories fetched in parallel")
	flags.String(config.KeyBaseURL, "", "GitHub Enterprise API URL (defaults to api.github.com)")
	cobra.CheckErr(bindFlags(v, flags,
		config.KeyAPI, config.KeySnapshot, config.KeyState, config.KeyIncludePulls,
		config.KeyFormat, config.KeySummary, config.KeyConcurrency, config.KeyBaseURL,
	))
	return cmd
}

// bindFlags binds each flag named by keys to the viper key of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// newIssueSource picks the issue source described by cfg.
func newIssueSource(cfg *config.Config, logger *log.Logger) (gateway.IssueSource, error) {
	if cfg.Snapshot != "" {
		return gateway.LoadSnapshotFile(cfg.Snapshot, logger)
	}

	if cfg.Token == "" {
		logger.Println("GITHUB_TOKEN is not set, using unauthenticated requests.")
	}
	httpClient, err := gateway.NewHTTPClient(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub HTTP client: %w", err)
	}
	if cfg.API == config.APIGraphQL {
		if cfg.Token == "" {
			return nil, errors.New("the GraphQL API requires GITHUB_TOKEN to be set")
		}
		return gateway.NewGraphQLGateway(httpClient, cfg.BaseURL, cfg.GatewayOptions(), logger)
	}
	return gateway.NewGitHubGateway(httpClient, cfg.BaseURL, cfg.GatewayOptions(), logger)
}

func init() {
	rootCmd.AddCommand(newReportCmd(config.New()))
}
