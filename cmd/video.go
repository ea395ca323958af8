package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/metaview/metaview/cmd/engagement"
	"github.com/metaview/metaview/internal/analysis"
	"github.com/metaview/metaview/internal/capability"
	"github.com/metaview/metaview/internal/config"
	"github.com/metaview/metaview/internal/probe"
	"github.com/metaview/metaview/internal/qualify"
	engagementrepo "github.com/metaview/metaview/internal/repository/engagement"
	periodrepo "github.com/metaview/metaview/internal/repository/period"
	uploadrepo "github.com/metaview/metaview/internal/repository/upload"
	"github.com/metaview/metaview/internal/service"
	"github.com/metaview/metaview/internal/service/common"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Lecture recording operations",
	Long:  `Operations for analyzing and managing lecture recordings.`,
}

// videoAnalyzeCmd runs the full intake flow for one recording
var videoAnalyzeCmd = &cobra.Command{
	Use:   "analyze [VIDEO_PATH]",
	Short: "Validate a recording against period timings and analyze engagement",
	Long: `Probe a recording's metadata, classify it against the configured
class-period timings, store it, and derive its engagement report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := args[0]

		var targetPeriod *int
		if cmd.Flags().Changed("period") {
			p, _ := cmd.Flags().GetInt("period")
			targetPeriod = &p
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

		log := newLogger()
		runner := common.NewCmdRunner()

		periodRepo := periodrepo.NewRepository(dbPool)
		uploadRepo := uploadrepo.NewRepository(dbPool)
		engagementRepo := engagementrepo.NewRepository(dbPool)

		prober := probe.NewProberWithCmdRunner(runner)
		registry := capability.NewRegistry(runner, cfg.WhisperModel, log)
		pipeline := analysis.NewPipelineWithSummarySentences(registry, prober, log, cfg.SummarySentences)
		engagementSvc := service.NewEngagementService(uploadRepo, engagementRepo, pipeline, log)

		qualifier := &qualify.Qualifier{
			GraceMinutes:     cfg.GraceMinutes,
			UTCOffsetMinutes: cfg.UTCOffsetMinutes,
		}

		qualificationSvc := service.NewQualificationService(
			prober,
			qualifier,
			periodRepo,
			uploadRepo,
			engagementSvc,
			cfg.UploadDir,
			log,
		)

		upload, verdict, err := qualificationSvc.AnalyzeVideo(ctx, videoPath, targetPeriod)
		if err != nil {
			return err
		}

		fmt.Println(verdict.Message)
		fmt.Println()
		fmt.Printf("Upload ID: %d\n", upload.ID)
		fmt.Printf("Duration: %s\n", engagement.FormatDuration(upload.DurationSeconds))
		if verdict.Timing != nil {
			fmt.Printf("Recording: %s - %s\n", verdict.Timing.VideoStart, verdict.Timing.VideoEnd)
			fmt.Printf("Period window: %s - %s\n", verdict.Timing.PeriodStart, verdict.Timing.PeriodEnd)
			fmt.Printf("Start delay: %d minute(s), end overrun: %d minute(s)\n",
				verdict.Timing.StartDelayMinutes, verdict.Timing.EndOverrunMinutes)
		}

		report, err := engagementRepo.GetByUploadID(ctx, upload.ID)
		if err != nil {
			fmt.Println("\nEngagement report is not available for this upload.")
			return nil
		}

		fmt.Println()
		fmt.Printf("Engagement score: %d/100\n", report.EngagementScore)
		fmt.Printf("Combined score: %d/100\n", report.CombinedEngagementScore)
		fmt.Printf("Clarity: %d/100, confidence: %d/100\n", report.ClarityScore, report.ConfidenceScore)
		fmt.Printf("Run 'metaview engagement show %d' for the full report.\n", upload.ID)

		return nil
	},
}

// videoListCmd lists stored uploads
var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analyzed recordings",
	Long:  `List analyzed recordings, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		uploadRepo := uploadrepo.NewRepository(dbPool)

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		uploads, err := uploadRepo.List(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list recordings: %w", err)
		}

		if len(uploads) == 0 {
			fmt.Println("No recordings found.")
			return nil
		}

		for _, u := range uploads {
			status := "NOT QUALIFIED"
			if u.IsQualified {
				status = "QUALIFIED"
			}
			fmt.Printf("ID: %d\n", u.ID)
			fmt.Printf("Filename: %s\n", u.Filename)
			fmt.Printf("Duration: %s\n", engagement.FormatDuration(u.DurationSeconds))
			fmt.Printf("Status: %s\n", status)
			if u.MatchedPeriod != nil {
				fmt.Printf("Matched period: %d\n", *u.MatchedPeriod)
			}
			fmt.Printf("Uploaded: %s\n", u.UploadDate.Format(time.RFC3339))
			fmt.Println("---")
		}

		return nil
	},
}

// videoDeleteCmd removes one upload record
var videoDeleteCmd = &cobra.Command{
	Use:   "delete [UPLOAD_ID]",
	Short: "Delete a recording record",
	Long:  `Delete a recording record and its engagement report by upload ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uploadID, err := parseUploadID(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Are you sure you want to delete upload %d? [y/N]: ", uploadID)
			var response string
			fmt.Scanln(&response)
			if response != "y" && response != "Y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

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

		uploadRepo := uploadrepo.NewRepository(dbPool)

		if err := uploadRepo.Delete(ctx, uploadID); err != nil {
			return fmt.Errorf("failed to delete upload: %w", err)
		}

		fmt.Printf("✅ Upload %d deleted.\n", uploadID)
		return nil
	},
}

// parseUploadID validates a positional upload ID argument
func parseUploadID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid upload ID: %s", raw)
	}
	return id, nil
}

func init() {
	videoAnalyzeCmd.Flags().IntP("period", "p", 0, "Restrict matching to one period number")

	videoListCmd.Flags().Int("limit", 10, "Maximum number of recordings to retrieve")
	videoListCmd.Flags().Int("offset", 0, "Number of recordings to skip")

	videoDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	videoCmd.AddCommand(videoAnalyzeCmd)
	videoCmd.AddCommand(videoListCmd)
	videoCmd.AddCommand(videoDeleteCmd)
	rootCmd.AddCommand(videoCmd)
}
