package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	autostream "github.com/servicehive/autostream"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of autostream",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autostream version %s\n", strings.TrimSpace(autostream.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
