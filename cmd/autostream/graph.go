package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servicehive/autostream/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the conversation graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the conversation state machine.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(graph.GenerateMermaid())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
