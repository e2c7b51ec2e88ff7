// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/sink/syslog"
)

const (
	logCmdUsage = "log [MESSAGE...]"
	logCmdShort = "format a message and send it to the configured sink"
	logCmdLong  = `Format a message and send it to the configured sink.
	The words of MESSAGE are joined by a single space. Unless the configuration
	enables debug mode or the important override, only calls marked with
	--important are emitted.

	The sink and every other option are read from the environment, or from the
	YAML file passed with --config.`

	logCmdExample = `# Log an important message on standard output
	LOG=echo superlogger log --important --level info boot ok

	# Log a structured payload serialized as JSON into a file
	LOG=file LOGDIR=/tmp/logs PAYLOAD_FORMAT=json superlogger log -i --json '{"user":"jane"}'`

	writeCmdUsage = "write LINE..."
	writeCmdShort = "append a raw line to the log file"
	writeCmdLong  = `Append a raw line to the log file, without timestamp or level.
	A newline is added after LINE. The command fails when the configured sink
	is not a file.`

	writeCmdExample = `# Append a separator to the log file
	LOG=file LOGDIR=/tmp/logs FILENAME=app.log superlogger write -- ----`

	levelsCmdUsage = "levels"
	levelsCmdShort = "list the severity levels"
)

// LogCmd returns the "log" cli command for emitting a single record.
func LogCmd() *cobra.Command {
	flags := &logFlags{}
	cmd := &cobra.Command{
		Use:     logCmdUsage,
		Short:   heredoc.Doc(logCmdShort),
		Long:    heredoc.Doc(logCmdLong),
		Example: heredoc.Doc(logCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// WriteCmd returns the "write" cli command for appending raw lines to the log file.
func WriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     writeCmdUsage,
		Short:   heredoc.Doc(writeCmdShort),
		Long:    heredoc.Doc(writeCmdLong),
		Example: heredoc.Doc(writeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := toWriteOptions(cmd, args)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	return cmd
}

// LevelsCmd returns the "levels" cli command printing the severity table.
func LevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   levelsCmdUsage,
		Short: heredoc.Doc(levelsCmdShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			printLevels(cmd.OutOrStdout())
		},
	}
}

func printLevels(w io.Writer) {
	fmt.Fprintf(w, "%-6s%-11s%s\n", "RANK", "LEVEL", "SYSLOG")
	for _, level := range severity.All() {
		fmt.Fprintf(w, "%-6d%-11s%d\n", int(level), level.String(), int(syslog.PriorityOf(level)))
	}
}
