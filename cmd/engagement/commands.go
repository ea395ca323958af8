package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/metaview/metaview/internal/analysis"
	"github.com/metaview/metaview/internal/capability"
	"github.com/metaview/metaview/internal/config"
	"github.com/metaview/metaview/internal/probe"
	repocommon "github.com/metaview/metaview/internal/repository/common"
	engagementrepo "github.com/metaview/metaview/internal/repository/engagement"
	uploadrepo "github.com/metaview/metaview/internal/repository/upload"
	"github.com/metaview/metaview/internal/service"
	"github.com/metaview/metaview/internal/service/common"
)

// NewEngagementCmd creates and returns the engagement command
func NewEngagementCmd() *cobra.Command {
	// engagementCmd represents the engagement command
	engagementCmd := &cobra.Command{
		Use:   "engagement",
		Short: "Engagement report operations",
		Long:  `Operations for viewing and recomputing engagement reports of analyzed recordings.`,
	}

	// Add subcommands
	engagementCmd.AddCommand(newShowCmd())
	engagementCmd.AddCommand(newRecomputeCmd())
	engagementCmd.AddCommand(newBackfillCmd())

	return engagementCmd
}

// newShowCmd creates the engagement show command
func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [UPLOAD_ID]",
		Short: "Show the engagement report for an upload",
		Long:  `Retrieve and display the stored engagement report for an upload.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploadID, err := parseUploadID(args[0])
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			dbPool, err := config.NewDatabasePool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbPool.Close()

			engagementRepo := engagementrepo.NewRepository(dbPool)

			report, err := engagementRepo.GetByUploadID(ctx, uploadID)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				jsonBytes, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(jsonBytes))
			default: // text
				fmt.Print(FormatReport(report))
			}

			return nil
		},
	}

	showCmd.Flags().StringP("format", "f", "text", "Output format: text, json")

	return showCmd
}

// newRecomputeCmd creates the engagement recompute command
func newRecomputeCmd() *cobra.Command {
	recomputeCmd := &cobra.Command{
		Use:   "recompute [UPLOAD_ID]",
		Short: "Recompute the engagement report for an upload",
		Long:  `Rerun the full analysis pipeline for an upload, replacing its stored report.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploadID, err := parseUploadID(args[0])
			if err != nil {
				return err
			}

			// Transcription dominates the runtime and scales with video length.
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			dbPool, err := config.NewDatabasePool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbPool.Close()

			engagementSvc := newEngagementService(dbPool, cfg)

			report, err := engagementSvc.Ensure(ctx, uploadID, true)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Engagement report recomputed for upload %d.\n\n", uploadID)
			fmt.Print(FormatReport(report))
			return nil
		},
	}

	return recomputeCmd
}

// newBackfillCmd creates the engagement backfill command
func newBackfillCmd() *cobra.Command {
	backfillCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Compute reports for uploads that have none",
		Long:  `Compute engagement reports for every stored upload that has no report yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Transcription dominates the runtime and scales with video length.
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			dbPool, err := config.NewDatabasePool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbPool.Close()

			engagementSvc := newEngagementService(dbPool, cfg)

			created, err := engagementSvc.Backfill(ctx)
			if err != nil {
				return err
			}

			if created == 0 {
				fmt.Println("All uploads already have engagement reports.")
				return nil
			}

			fmt.Printf("✅ Created %d engagement report(s).\n", created)
			return nil
		},
	}

	return backfillCmd
}

// newEngagementService wires the analysis pipeline and repositories
func newEngagementService(dbPool repocommon.Pool, cfg *config.Config) service.EngagementService {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	runner := common.NewCmdRunner()
	uploadRepo := uploadrepo.NewRepository(dbPool)
	engagementRepo := engagementrepo.NewRepository(dbPool)

	prober := probe.NewProberWithCmdRunner(runner)
	registry := capability.NewRegistry(runner, cfg.WhisperModel, log)
	pipeline := analysis.NewPipelineWithSummarySentences(registry, prober, log, cfg.SummarySentences)

	return service.NewEngagementService(uploadRepo, engagementRepo, pipeline, log)
}

// parseUploadID validates a positional upload ID argument
func parseUploadID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid upload ID: %s", raw)
	}
	return id, nil
}
