package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servicehive/autostream/internal/cli"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the agent on the terminal",
	Long:  `Starts the interactive terminal conversation. Lead questions block on stdin instead of suspending the session.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := cli.RunChat(cmd.Context(), cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	// Make 'chat' the default if no command is provided.
	rootCmd.Run = chatCmd.Run
}
