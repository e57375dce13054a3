package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetEmitCmd_Exists verifies getEmitCmd returns
// a valid command.
func TestGetEmitCmd_Exists(t *testing.T) {
	cmd := getEmitCmd()
	require.NotNil(t, cmd, "Emit command should exist")
	assert.Equal(t, "emit", cmd.Name())
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetEmitCmd_LongDescription verifies long
// description.
func TestGetEmitCmd_LongDescription(t *testing.T) {
	cmd := getEmitCmd()

	assert.Contains(t, cmd.Long, "--page-sql")
	assert.Contains(t, cmd.Long, "--dbpedia-ttl")
	assert.Contains(t, cmd.Long, "STDIN")
}

// TestGetEmitCmd_Flags verifies flags and their shorthands.
func TestGetEmitCmd_Flags(t *testing.T) {
	cmd := getEmitCmd()

	tests := []struct {
		name, shorthand string
	}{
		{"page-sql", ""},
		{"dbpedia-ttl", ""},
		{"output", "o"},
		{"format", "f"},
	}

	for _, v := range tests {
		flag := cmd.Flags().Lookup(v.name)
		require.NotNil(t, flag, v.name)
		assert.Equal(t, v.shorthand, flag.Shorthand, v.name)
	}
}

// TestGetEmitCmd_PageListFlags verifies that exactly one page list
// has to be given.
func TestGetEmitCmd_PageListFlags(t *testing.T) {
	cmd := getEmitCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--page-sql", "p.sql"}))
	assert.NoError(t, cmd.ValidateFlagGroups())

	cmd = getEmitCmd()
	require.NoError(t, cmd.ParseFlags(
		[]string{"--page-sql", "p.sql", "--dbpedia-ttl", "p.ttl"},
	))
	assert.Error(t, cmd.ValidateFlagGroups())

	cmd = getEmitCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-o", "out.tsv"}))
	assert.Error(t, cmd.ValidateFlagGroups())
}

// TestGetEmitCmd_Args verifies that at most one dictionary is given.
func TestGetEmitCmd_Args(t *testing.T) {
	cmd := getEmitCmd()
	assert.NoError(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"aliases.gob"}))
	assert.Error(t, cmd.Args(cmd, []string{"a.gob", "b.gob"}))
}
