package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servicehive/autostream/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "autostream",
	Short: "AutoStream conversational sales and support agent",
	Long:  `AutoStream answers product questions over a knowledge base and captures sign-up leads, on the terminal or over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (YAML)")
}

// loadConfig reads the config file named by --config, plus environment and
// defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
