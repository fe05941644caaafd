package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 发布时通过 -ldflags "-X" 覆盖
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本号",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "desktop-cleaner %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
