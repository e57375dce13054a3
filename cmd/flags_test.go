package cmd

import (
	"testing"

	"github.com/gnames/wikialias/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagOptions(t *testing.T) {
	cmd := getBuildCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-j", "3",
		"--queue-size", "10",
		"--ignore-ns", "Category,File",
		"-f", "sqlite",
	}))

	c := config.New()
	c.Update(flagOptions(cmd, jobsFlag, queueSizeFlag, ignoreNsFlag, formatFlag))
	assert.Equal(t, 3, c.JobsNumber)
	assert.Equal(t, 10, c.QueueSize)
	assert.Equal(t, []string{"category:", "file:"}, c.IgnoredNamespaces)
	assert.Equal(t, "sqlite", c.Store.Format)
}

func TestFlagOptionsUnchanged(t *testing.T) {
	cmd := getBuildCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	opts := flagOptions(cmd, jobsFlag, queueSizeFlag, ignoreNsFlag, formatFlag)
	assert.Empty(t, opts)

	c := config.New()
	c.Update(opts)
	assert.Equal(t, config.New().JobsNumber, c.JobsNumber)
	assert.Equal(t, "gob", c.Store.Format)
}
