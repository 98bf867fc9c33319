package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-time-diff/internal/util"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// Open returns the stream to annotate. An empty path or "-" selects stdin.
// With follow set, a file is read past its current end until ctx is done.
func Open(ctx context.Context, path string, follow bool, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		if follow {
			util.LogWarn("--follow has no effect when reading stdin")
		}
		return io.NopCloser(stdin), nil
	}

	if follow {
		return NewFollower(ctx, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	util.LogDebugf("Reading %s", path)
	return file, nil
}

// Follower reads a file like tail -f: at end of file it blocks until the
// file is written again, and reports io.EOF once its context is done or
// the file goes away.
type Follower struct {
	ctx     context.Context
	path    string
	file    *os.File
	watcher *fsnotify.Watcher
}

// NewFollower opens path and starts watching it for writes
func NewFollower(ctx context.Context, path string) (*Follower, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		file.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	util.LogDebugf("Following %s", path)
	return &Follower{
		ctx:     ctx,
		path:    path,
		file:    file,
		watcher: watcher,
	}, nil
}

// Read implements io.Reader
func (f *Follower) Read(p []byte) (int, error) {
	for {
		n, err := f.file.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if err := f.wait(); err != nil {
			return 0, err
		}
	}
}

// wait blocks until the file may have grown
func (f *Follower) wait() error {
	for {
		select {
		case <-f.ctx.Done():
			return io.EOF

		case event, ok := <-f.watcher.Events:
			if !ok {
				return io.EOF
			}
			if event.Has(fsnotify.Write) {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				util.LogWarnf("Input %s was %s, stopping", f.path, event.Op)
				return io.EOF
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return io.EOF
			}
			// Log error but keep following
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Close stops watching and closes the file
func (f *Follower) Close() error {
	werr := f.watcher.Close()
	ferr := f.file.Close()
	if werr != nil {
		return werr
	}
	return ferr
}
