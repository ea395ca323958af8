package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/metaview/metaview/internal/config"
	"github.com/metaview/metaview/internal/model"
	periodrepo "github.com/metaview/metaview/internal/repository/period"
	"github.com/metaview/metaview/internal/timeparse"
)

// periodCmd represents the period command
var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Manage class-period timings",
	Long:  `Operations for managing the class-period timings recordings are validated against.`,
}

// periodListCmd lists all configured period timings
var periodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured period timings",
	Long:  `List all class-period timings in ascending period order.`,
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

		repo := periodrepo.NewRepository(dbPool)

		windows, err := repo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list period timings: %w", err)
		}

		if len(windows) == 0 {
			fmt.Println("No period timings configured. Use 'metaview period set' to add one.")
			return nil
		}

		for _, w := range windows {
			fmt.Printf("Period %d: %s\n", w.Period, w.DisplayTime)
		}

		return nil
	},
}

// periodSetCmd creates or replaces one period timing
var periodSetCmd = &cobra.Command{
	Use:   "set [PERIOD] [START] [END]",
	Short: "Create or replace a period timing",
	Long:  `Create or replace a period timing. Times accept 12-hour ("08:00 AM") or 24-hour ("08:00") form.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := strconv.Atoi(args[0])
		if err != nil || period < 1 {
			return fmt.Errorf("invalid period number: %s", args[0])
		}

		startTime, endTime := args[1], args[2]
		if _, err := timeparse.ClockTime(startTime); err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		if _, err := timeparse.ClockTime(endTime); err != nil {
			return fmt.Errorf("invalid end time: %w", err)
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

		repo := periodrepo.NewRepository(dbPool)

		window := &model.PeriodWindow{
			Period:      period,
			StartTime:   startTime,
			EndTime:     endTime,
			DisplayTime: fmt.Sprintf("%s - %s", startTime, endTime),
		}
		if err := repo.Upsert(ctx, window); err != nil {
			return fmt.Errorf("failed to save period timing: %w", err)
		}

		fmt.Printf("✅ Period %d set to %s\n", period, window.DisplayTime)
		return nil
	},
}

// periodDeleteCmd removes one period timing
var periodDeleteCmd = &cobra.Command{
	Use:   "delete [PERIOD]",
	Short: "Delete a period timing",
	Long:  `Delete one class-period timing by period number.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid period number: %s", args[0])
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Are you sure you want to delete period %d? [y/N]: ", period)
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

		repo := periodrepo.NewRepository(dbPool)

		if err := repo.Delete(ctx, period); err != nil {
			return fmt.Errorf("failed to delete period timing: %w", err)
		}

		fmt.Printf("✅ Period %d deleted.\n", period)
		return nil
	},
}

func init() {
	periodDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	periodCmd.AddCommand(periodListCmd)
	periodCmd.AddCommand(periodSetCmd)
	periodCmd.AddCommand(periodDeleteCmd)
	rootCmd.AddCommand(periodCmd)
}
