// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ameshkin/superlogger/internal/severity"
)

var (
	// ErrConfigNotValid reports a missing or invalid configuration option.
	ErrConfigNotValid = errors.New("logger configuration not valid")
	// ErrParsing reports failures that occur while decoding configuration files.
	ErrParsing = errors.New("error parsing")

	// logExtensions are the file extensions recognized as already carrying a log suffix.
	logExtensions = []string{".log", ".txt"}

	// streamAliases maps the pseudo-stream directories to the process stream they designate.
	streamAliases = map[string]string{
		"stream://stdout": StreamStdout,
		"stream://stderr": StreamStderr,
		"php://stdout":    StreamStdout,
		"php://output":    StreamStdout,
		"php://stderr":    StreamStderr,
	}
)

// Process streams a pseudo-stream alias can designate.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Sink selects the destination of formatted records.
type Sink string

const (
	SinkOff    Sink = "off"
	SinkEcho   Sink = "echo"
	SinkSyslog Sink = "syslog"
	SinkFile   Sink = "file"
)

// UnmarshalText accepts the sink names and the numeric selectors 0 (echo),
// 1 (syslog) and 2 (file).
func (s *Sink) UnmarshalText(text []byte) error {
	switch value := strings.ToLower(strings.TrimSpace(string(text))); value {
	case "", "off", "none", "disabled":
		*s = SinkOff
	case "0", "echo", "stdout", "browser":
		*s = SinkEcho
	case "1", "syslog", "system", "error_log":
		*s = SinkSyslog
	case "2", "file":
		*s = SinkFile
	default:
		return fmt.Errorf("unknown sink %q", value)
	}
	return nil
}

// PayloadFormat selects how structured payloads and call stacks are serialized.
type PayloadFormat string

const (
	// FormatPlain leaves payloads raw for the sink to dump.
	FormatPlain PayloadFormat = "plain"
	FormatJSON  PayloadFormat = "json"
	FormatYAML  PayloadFormat = "yaml"
)

func (f *PayloadFormat) UnmarshalText(text []byte) error {
	switch value := strings.ToLower(strings.TrimSpace(string(text))); value {
	case "", "plain", "raw", "0", "false":
		*f = FormatPlain
	case "json", "1", "true":
		*f = FormatJSON
	case "yaml", "yml":
		*f = FormatYAML
	default:
		return fmt.Errorf("unknown payload format %q", value)
	}
	return nil
}

// LineBreak selects the record terminator of the output medium.
type LineBreak string

const (
	LineBreakText LineBreak = "text"
	LineBreakHTML LineBreak = "html"
)

func (b *LineBreak) UnmarshalText(text []byte) error {
	switch value := strings.ToLower(strings.TrimSpace(string(text))); value {
	case "", "text", "newline", "cli":
		*b = LineBreakText
	case "html", "markup", "br":
		*b = LineBreakHTML
	default:
		return fmt.Errorf("unknown line break %q", value)
	}
	return nil
}

// Permissions holds directory permission bits parsed as an octal number.
type Permissions os.FileMode

func (p *Permissions) UnmarshalText(text []byte) error {
	value := strings.TrimPrefix(strings.TrimSpace(string(text)), "0o")
	bits, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid permissions %q: %w", string(text), err)
	}
	*p = Permissions(os.FileMode(bits) & os.ModePerm)
	return nil
}

// FileMode returns the permission bits as an os.FileMode.
func (p Permissions) FileMode() os.FileMode {
	return os.FileMode(p)
}

// Config is the resolved configuration record handed to the logger.
type Config struct {
	Sink        Sink        `env:"LOG" envDefault:"off" yaml:"sink"`
	Directory   string      `env:"LOGDIR" yaml:"directory"`
	FileName    string      `env:"FILENAME" yaml:"fileName"`
	Prefix      string      `env:"PREFIX" envDefault:"log_" yaml:"prefix"`
	Extension   string      `env:"EXTENSION" envDefault:"txt" yaml:"extension"`
	Permissions Permissions `env:"PERMISSIONS" envDefault:"0777" yaml:"permissions"`

	FlushFrequency int  `env:"FLUSHFREQUENCY" envDefault:"0" yaml:"flushFrequency"`
	Debug          bool `env:"DEBUG" envDefault:"false" yaml:"debug"`
	Important      bool `env:"IMPORTANT" envDefault:"false" yaml:"important"`

	PayloadFormat   PayloadFormat    `env:"PAYLOAD_FORMAT" envDefault:"plain" yaml:"payloadFormat"`
	Backtrace       bool             `env:"BACKTRACE" envDefault:"false" yaml:"backtrace"`
	BacktraceDepth  int              `env:"BACKTRACE_DEPTH" envDefault:"0" yaml:"backtraceDepth"`
	BacktraceLevels []severity.Level `env:"BACKTRACE_LEVELS" envSeparator:"," yaml:"backtraceLevels"`
	Inspector       bool             `env:"INSPECTOR" envDefault:"false" yaml:"inspector"`
	LineBreak       LineBreak        `env:"LINE_BREAK" envDefault:"text" yaml:"lineBreak"`

	LineDateFormat string `env:"LOG_LINE_DATE_FORMAT" envDefault:"2006-01-02 15:04:05.000000" yaml:"lineDateFormat"`
	FileDateFormat string `env:"LOG_FILE_DATE_FORMAT" envDefault:"2006-01-02" yaml:"fileDateFormat"`

	SyslogBackend string `env:"SYSLOG_BACKEND" envDefault:"auto" yaml:"syslogBackend"`
	SyslogTag     string `env:"SYSLOG_TAG" envDefault:"superlogger" yaml:"syslogTag"`
}

// Default returns the configuration obtained from an empty environment.
func Default() Config {
	var config Config
	// the defaults are static, parsing them cannot fail
	_ = env.ParseWithOptions(&config, env.Options{Environment: map[string]string{}})
	return config
}

// FromEnv loads and validates the configuration from the process environment.
func FromEnv() (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// FromFile loads the YAML document at path on top of the defaults and validates the result.
func FromFile(path string) (*Config, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s %q: %w", ErrParsing, path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configured values and reports every invalid option at once.
func (c Config) Validate() error {
	errorsList := make([]string, 0)

	switch c.Sink {
	case "", SinkOff, SinkEcho, SinkSyslog, SinkFile:
	default:
		errorsList = append(errorsList, fmt.Sprintf("LOG has unknown sink %q", c.Sink))
	}

	if c.Sink == SinkFile {
		if strings.TrimSpace(c.Directory) == "" {
			errorsList = append(errorsList, "LOGDIR is required for the file sink")
		}
		if _, isStream := StreamAlias(c.Directory); !isStream && strings.Contains(c.Directory, "://") {
			errorsList = append(errorsList, fmt.Sprintf("LOGDIR has unsupported stream %q", c.Directory))
		}
		if c.needsExtension() && strings.TrimSpace(c.Extension) == "" {
			errorsList = append(errorsList, "EXTENSION is required when FILENAME has no log extension")
		}
		if c.FileName == "" && c.FileDateFormat == "" {
			errorsList = append(errorsList, "LOG_FILE_DATE_FORMAT is required when FILENAME is not set")
		}
	}

	if c.FlushFrequency < 0 {
		errorsList = append(errorsList, "FLUSHFREQUENCY must not be negative")
	}
	if c.BacktraceDepth < 0 {
		errorsList = append(errorsList, "BACKTRACE_DEPTH must not be negative")
	}
	for _, level := range c.BacktraceLevels {
		if !level.Valid() {
			errorsList = append(errorsList, fmt.Sprintf("BACKTRACE_LEVELS contains invalid level %d", int(level)))
		}
	}
	if c.LineDateFormat == "" {
		errorsList = append(errorsList, "LOG_LINE_DATE_FORMAT must not be empty")
	}

	switch c.SyslogBackend {
	case "", "auto", "journal", "syslog", "stderr":
	default:
		errorsList = append(errorsList, fmt.Sprintf("SYSLOG_BACKEND has unknown value %q", c.SyslogBackend))
	}

	if len(errorsList) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigNotValid, strings.Join(errorsList, ", "))
	}
	return nil
}

// needsExtension reports whether the file path resolution will append Extension.
func (c Config) needsExtension() bool {
	if _, isStream := StreamAlias(c.Directory); isStream {
		return false
	}
	return c.FileName == "" || !HasLogExtension(c.FileName)
}

// HasLogExtension reports whether name already ends with a recognized log extension.
func HasLogExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range logExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// StreamAlias returns the normalized alias and whether directory designates a
// process stream instead of a real directory.
func StreamAlias(directory string) (string, bool) {
	alias := strings.ToLower(strings.TrimSpace(directory))
	_, found := streamAliases[alias]
	return alias, found
}

// StreamOf returns the process stream, StreamStdout or StreamStderr, designated by alias.
func StreamOf(alias string) (string, bool) {
	stream, found := streamAliases[alias]
	return stream, found
}
