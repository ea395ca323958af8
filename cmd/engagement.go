package cmd

import (
	"github.com/metaview/metaview/cmd/engagement"
)

func init() {
	rootCmd.AddCommand(engagement.NewEngagementCmd())
}
