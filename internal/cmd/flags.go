// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/superlog"
)

const (
	levelFlagName    = "level"
	levelFlagShort   = "l"
	levelFlagUsage   = "severity of the message, by name or rank"
	defaultLevelFlag = "emergency"

	importantFlagName  = "important"
	importantFlagShort = "i"
	importantFlagUsage = "emit the message even when debug mode is off"

	exitFlagName  = "exit"
	exitFlagUsage = "close the logger and exit as soon as the message is dispatched"

	jsonFlagName  = "json"
	jsonFlagUsage = "decode MESSAGE as JSON, objects and arrays become structured payloads"
)

// logFlags holds the flags for the "log" command.
type logFlags struct {
	level     string
	important bool
	exit      bool
	json      bool
}

// addFlags adds the cli flags to the cobra command.
func (f *logFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.level, levelFlagName, levelFlagShort, defaultLevelFlag, levelFlagUsage)
	cmd.Flags().BoolVarP(&f.important, importantFlagName, importantFlagShort, false, importantFlagUsage)
	cmd.Flags().BoolVar(&f.exit, exitFlagName, false, exitFlagUsage)
	cmd.Flags().BoolVar(&f.json, jsonFlagName, false, jsonFlagUsage)

	_ = cmd.RegisterFlagCompletionFunc(levelFlagName, levelCompletion)
}

// toOptions converts the log flags to logOptions enriching it with the passed arguments.
func (f *logFlags) toOptions(cmd *cobra.Command, args []string) (*logOptions, error) {
	level, err := severity.Parse(f.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidLevel, f.level)
	}

	message := strings.Join(args, " ")
	var input any = message
	if f.json && message != "" {
		var decoded any
		if err := json.Unmarshal([]byte(message), &decoded); err != nil {
			return nil, fmt.Errorf("%w: %s", errInvalidJSON, err)
		}
		input = decoded
	}

	flags := make([]superlog.Flag, 0, 2)
	if f.important {
		flags = append(flags, superlog.Important)
	}
	if f.exit {
		flags = append(flags, superlog.Terminate)
	}

	return &logOptions{
		configPath: configPath(cmd),
		message:    message,
		input:      input,
		level:      level,
		flags:      flags,
		out:        cmd.OutOrStdout(),
		errOut:     cmd.ErrOrStderr(),
		exit:       os.Exit,
	}, nil
}

// toWriteOptions converts the arguments of the "write" command to writeOptions.
func toWriteOptions(cmd *cobra.Command, args []string) *writeOptions {
	return &writeOptions{
		configPath: configPath(cmd),
		line:       strings.Join(args, " "),
		out:        cmd.OutOrStdout(),
	}
}
