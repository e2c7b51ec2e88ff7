// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/logger"
	"github.com/ameshkin/superlogger/internal/severity"
)

const (
	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "path to a YAML configuration file; the environment is used when not set"

	cmdLoggerName = "cmd"
)

var (
	errNoMessage    = errors.New("no message provided")
	errInvalidLevel = errors.New("invalid level provided")
	errInvalidJSON  = errors.New("message is not valid JSON")
)

// AddConfigFlag registers the persistent configuration flag shared by every
// command that builds a logger.
func AddConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(configFlagName, configFlagShort, "", configFlagUsage)
}

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoMessage):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidLevel):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// configPath returns the value of the configuration flag, inherited from the
// parent commands when present.
func configPath(cmd *cobra.Command) string {
	if flag := cmd.Flag(configFlagName); flag != nil {
		return flag.Value.String()
	}
	return ""
}

// loadConfig reads the configuration file at path, or the environment when path is empty.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	log := logger.ForComponent(ctx, cmdLoggerName)
	if path == "" {
		log.Debug("loading configuration from the environment")
		return config.FromEnv()
	}

	log.Debug("loading configuration from file", "path", path)
	return config.FromFile(path)
}

// levelCompletion provides shell completion for the level flag.
func levelCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var comps []string
	for _, level := range severity.All() {
		name, _ := level.MarshalText()
		if strings.HasPrefix(string(name), strings.ToLower(toComplete)) {
			comps = append(comps, cobra.CompletionWithDesc(string(name), level.String()+" severity"))
		}
	}

	return comps, cobra.ShellCompDirectiveNoFileComp
}
