package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"chat", "serve", "graph", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}

	// chat is the default action when no subcommand is given.
	assert.NotNil(t, rootCmd.Run)

	flag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, flag)
}
