package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"serve", "paths", "export", "seed"})
}

func TestExportOutFlagDefault(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"export"})
	require.NoError(t, err)

	assert.Equal(t, "out", cmd.Flags().Lookup("out").DefValue)
}

func TestPathsCommandFailsOnInvalidConfig(t *testing.T) {
	t.Setenv("CONTENT_STORE", "unknown")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"paths"})

	err := root.Execute()

	assert.ErrorContains(t, err, "CONTENT_STORE")
}
