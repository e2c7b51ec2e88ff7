// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package file

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ameshkin/superlogger/internal/config"
)

const defaultDirPermissions os.FileMode = 0o755

// streams resolves the process streams designated by the pseudo-stream
// aliases. Lookups happen at open time.
var streams = map[string]func() *os.File{
	config.StreamStdout: func() *os.File { return os.Stdout },
	config.StreamStderr: func() *os.File { return os.Stderr },
}

// Options holds what the file resource needs from the logger configuration.
type Options struct {
	Directory   string
	FileName    string
	Prefix      string
	Extension   string
	DateFormat  string
	Permissions os.FileMode

	FlushFrequency int

	// Clock provides the time used to synthesize file names; nil means time.Now.
	Clock func() time.Time
}

// OptionsFromConfig extracts the file resource options from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Directory:      cfg.Directory,
		FileName:       cfg.FileName,
		Prefix:         cfg.Prefix,
		Extension:      cfg.Extension,
		DateFormat:     cfg.FileDateFormat,
		Permissions:    cfg.Permissions.FileMode(),
		FlushFrequency: cfg.FlushFrequency,
	}
}

// ResolvePath returns the effective target of opts. Pseudo-stream aliases are
// returned normalized; otherwise the file name is the configured one, with the
// extension appended unless it already ends in .log or .txt, or is synthesized
// as prefix, date and extension.
func ResolvePath(opts Options, now time.Time) string {
	if alias, isStream := config.StreamAlias(opts.Directory); isStream {
		return alias
	}

	extension := strings.TrimPrefix(opts.Extension, ".")
	name := opts.FileName
	switch {
	case name == "":
		name = opts.Prefix + now.Format(opts.DateFormat) + "." + extension
	case !config.HasLogExtension(name):
		name = name + "." + extension
	}

	return filepath.Join(opts.Directory, name)
}
