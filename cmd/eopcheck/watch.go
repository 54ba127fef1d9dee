package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFiles checks files once, then again each time one of them is
// written, until ctx is done. Directories are watched rather than the
// files themselves so editors that replace a file on save are seen.
func watchFiles(ctx context.Context, files []string, opts options, out, errOut io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tracked := make(map[string]string, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		tracked[abs] = f
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	checkFiles(ctx, files, opts, out, errOut)
	if opts.Verbose {
		fmt.Fprintf(errOut, "eopcheck: watching %d files\n", len(files))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			f, ok := tracked[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			checkFiles(ctx, []string{f}, opts, out, errOut)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "eopcheck: watch error: %v\n", err)
		}
	}
}
