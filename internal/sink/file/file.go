// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package file

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/sink"
)

var (
	// ErrPermission reports a log file that exists but cannot be written.
	ErrPermission = errors.New("file exists but is not writable")
	// ErrResource reports a log resource that could not be acquired.
	ErrResource = errors.New("could not acquire log resource")
	// ErrClosed reports a write attempted after Close.
	ErrClosed = errors.New("log resource already closed")
	// ErrWrite reports a failed write to the open resource.
	ErrWrite = sink.ErrWrite
)

var _ sink.Sink = &File{}

// File is an open log file, or a pseudo-stream, with buffered appends.
type File struct {
	path   string
	buffer *bufio.Writer
	// closer is nil for pseudo-streams, which are owned by the process.
	closer io.Closer

	flushFrequency int
	lines          int
	lastLine       string
	closed         bool

	renderer record.Renderer
	lock     sync.Mutex
}

// Open acquires the resource described by opts. The parent directory is
// created when missing and regular files are opened in append mode.
func Open(opts Options) (*File, error) {
	now := time.Now
	if opts.Clock != nil {
		now = opts.Clock
	}

	path := ResolvePath(opts, now())
	if name, found := config.StreamOf(path); found {
		return newFile(path, streams[name](), nil, opts.FlushFrequency), nil
	}

	permissions := opts.Permissions
	if permissions == 0 {
		permissions = defaultDirPermissions
	}
	if err := os.MkdirAll(filepath.Dir(path), permissions); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResource, err)
	}

	if err := checkWritable(path); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResource, err)
	}
	return newFile(path, file, file, opts.FlushFrequency), nil
}

// checkWritable fails when path exists and cannot be opened for writing.
func checkWritable(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %s", ErrResource, err)
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrResource, path)
	}

	handle, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrPermission, path)
		}
		return fmt.Errorf("%w: %s", ErrResource, err)
	}
	return handle.Close()
}

func newFile(path string, w io.Writer, closer io.Closer, flushFrequency int) *File {
	return &File{
		path:           path,
		buffer:         bufio.NewWriter(w),
		closer:         closer,
		flushFrequency: flushFrequency,
		renderer:       record.Plain{},
	}
}

// Write appends line without any formatting. The buffer is flushed every
// flushFrequency successful writes.
func (f *File) Write(line string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.write(line)
}

func (f *File) write(line string) error {
	if f.closed {
		return ErrClosed
	}

	if _, err := f.buffer.WriteString(line); err != nil {
		return fmt.Errorf("%w: %s", ErrWrite, err)
	}

	f.lines++
	f.lastLine = strings.TrimSpace(line)
	if f.flushFrequency > 0 && f.lines%f.flushFrequency == 0 {
		if err := f.buffer.Flush(); err != nil {
			return fmt.Errorf("%w: %s", ErrWrite, err)
		}
	}
	return nil
}

// Emit writes the header, the payload dump and the call stack dump as
// separate writes.
func (f *File) Emit(rec *record.Record) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if err := f.write(rec.Text); err != nil {
		return err
	}
	if block := rec.PayloadBlock(f.renderer); block != "" {
		if err := f.write(block); err != nil {
			return err
		}
	}
	if block := rec.StackBlock(f.renderer); block != "" {
		if err := f.write(block); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered data and releases the file. Pseudo-streams are only
// flushed. Subsequent calls do nothing.
func (f *File) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	if err := f.buffer.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %s", ErrWrite, err))
	}
	if f.closer != nil {
		if err := f.closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lines returns the number of successful writes.
func (f *File) Lines() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.lines
}

// LastLine returns the last written line without surrounding whitespace.
func (f *File) LastLine() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.lastLine
}

// Path returns the resolved path, or the normalized alias for pseudo-streams.
func (f *File) Path() string {
	return f.path
}
