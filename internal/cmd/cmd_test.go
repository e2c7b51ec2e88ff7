// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameshkin/superlogger/internal/superlog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "superlogger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "superlogger"}
	AddConfigFlag(root)
	root.AddCommand(LogCmd(), WriteCmd(), LevelsCmd())
	return root
}

func TestCmds(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	echoConfig := writeConfig(t, "sink: echo\n")
	fileConfig := writeConfig(t, "sink: file\ndirectory: "+logDir+"\nfileName: cmd.log\npayloadFormat: json\n")

	testCases := map[string]struct {
		args                 []string
		expectedError        error
		expectedErrorMessage string
		expectedOutput       *regexp.Regexp
		expectedUsage        bool
	}{
		"log command with no message returns no error and print usage": {
			args:          []string{"log", "-c", echoConfig},
			expectedUsage: true,
		},
		"log command with invalid level returns error and usage": {
			args:                 []string{"log", "-c", echoConfig, "--level", "loud", "hello"},
			expectedError:        errInvalidLevel,
			expectedErrorMessage: "invalid level provided: loud\n",
			expectedUsage:        true,
		},
		"log command with missing configuration file": {
			args:                 []string{"log", "-c", filepath.Join(logDir, "missing.yaml"), "hello"},
			expectedError:        syscall.ENOENT,
			expectedErrorMessage: "open " + filepath.Join(logDir, "missing.yaml") + ": no such file or directory\n",
		},
		"log command emits important messages on the echo sink": {
			args:           []string{"log", "-c", echoConfig, "-i", "-l", "info", "boot", "ok"},
			expectedOutput: regexp.MustCompile(`^\[[^\]]+\] \[Info\] boot ok\n$`),
		},
		"log command skips messages that are not important": {
			args: []string{"log", "-c", echoConfig, "-l", "info", "boot", "ok"},
		},
		"log command uses emergency as default level": {
			args:           []string{"log", "-c", echoConfig, "-i", "down"},
			expectedOutput: regexp.MustCompile(`^\[[^\]]+\] \[Emergency\] down\n$`),
		},
		"log command rejects invalid json": {
			args:                 []string{"log", "-c", echoConfig, "--json", "{"},
			expectedError:        errInvalidJSON,
			expectedErrorMessage: "message is not valid JSON: unexpected end of JSON input\n",
		},
		"write command fails without a file sink": {
			args:                 []string{"write", "-c", echoConfig, "raw"},
			expectedError:        superlog.ErrInvalidState,
			expectedErrorMessage: superlog.ErrInvalidState.Error() + "\n",
		},
		"write command with no line returns no error and print usage": {
			args:          []string{"write", "-c", fileConfig},
			expectedUsage: true,
		},
		"levels command prints the severity table": {
			args:           []string{"levels"},
			expectedOutput: regexp.MustCompile(`(?s)^RANK  LEVEL      SYSLOG\n0     Debug      7\n.*7     Emergency  0\n$`),
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			errBuffer := new(bytes.Buffer)
			outBuffer := new(bytes.Buffer)
			cmd := testRoot()
			cmd.SetOut(outBuffer)
			cmd.SetErr(errBuffer)
			cmd.SetUsageTemplate("usage string")
			cmd.SetArgs(test.args)

			err := cmd.ExecuteContext(t.Context())
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				assert.Equal(t, test.expectedErrorMessage, errBuffer.String())
			} else {
				assert.NoError(t, err)
				assert.Empty(t, errBuffer)
			}

			switch {
			case test.expectedUsage:
				assert.Equal(t, "usage string", outBuffer.String())
			case test.expectedOutput != nil:
				assert.Regexp(t, test.expectedOutput, outBuffer.String())
			default:
				assert.Empty(t, outBuffer)
			}
		})
	}
}

func TestFileSinkCommands(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	configPath := writeConfig(t, "sink: file\ndirectory: "+logDir+"\nfileName: cmd.log\npayloadFormat: json\n")

	run := func(args ...string) {
		t.Helper()

		cmd := testRoot()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs(append([]string{args[0], "-c", configPath}, args[1:]...))
		require.NoError(t, cmd.ExecuteContext(t.Context()))
	}

	run("log", "-i", "-l", "warning", "--json", `{"user":"jane","id":7}`)
	run("write", "----")
	run("log", "-i", "-l", "3", "plain", "text")

	data, err := os.ReadFile(filepath.Join(logDir, "cmd.log"))
	require.NoError(t, err)

	expected := regexp.MustCompile(`^\[[^\]]+\] \[Warning\]\n\{\n    "id": 7,\n    "user": "jane"\n\}\n----\n\[[^\]]+\] \[Warning\] plain text\n$`)
	assert.Regexp(t, expected, string(data))
}

func TestLevelCompletion(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		toComplete         string
		expectedCompletion []string
	}{
		"partial name": {
			toComplete:         "e",
			expectedCompletion: []string{"error\tError severity", "emergency\tEmergency severity"},
		},
		"upper case prefix": {
			toComplete:         "CR",
			expectedCompletion: []string{"critical\tCritical severity"},
		},
		"unknown prefix": {
			toComplete: "x",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			comps, directive := levelCompletion(nil, nil, test.toComplete)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.ElementsMatch(t, test.expectedCompletion, comps)
		})
	}
}
