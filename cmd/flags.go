package cmd

import (
	"github.com/gnames/wikialias/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts a flag, if it was set, to config options.
type funcFlag func(cmd *cobra.Command) []config.Option

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func queueSizeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("queue-size") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("queue-size")
	return []config.Option{config.OptQueueSize(i)}
}

func ignoreNsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("ignore-ns") {
		return nil
	}
	ss, _ := cmd.Flags().GetStringSlice("ignore-ns")
	return []config.Option{config.OptIgnoredNamespaces(ss)}
}

func formatFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("format") {
		return nil
	}
	s, _ := cmd.Flags().GetString("format")
	return []config.Option{config.OptStoreFormat(s)}
}

// flagOptions collects options of all flags set by a user.
func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range flags {
		res = append(res, f(cmd)...)
	}
	return res
}

// addFormatFlag adds the --format flag shared by build and emit.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(
		"format", "f", "",
		"dictionary format: gob, json, sqlite or postgres (default from config)",
	)
}
