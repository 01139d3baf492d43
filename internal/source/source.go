// Package source streams the lines of the input file.
// Package source 逐行读取输入文件。
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nxadm/tail"

	apperrors "github.com/livp123/epochline/pkg/errors"
)

// DefaultInputFile is the record file read from the working directory.
// DefaultInputFile 是从工作目录读取的记录文件。
const DefaultInputFile = "birds.almost"

// File is an open, read-only input file.
// File 是一个以只读方式打开的输入文件。
type File struct {
	path string
	tail *tail.Tail

	closeOnce sync.Once
	closeErr  error
}

// Open opens path for a single sequential pass. It never follows appended
// data or reopens rotated files.
// Open 打开文件进行一次顺序读取，不跟踪追加内容，也不重新打开轮转文件。
func Open(path string) (*File, error) {
	safePath := filepath.Clean(path)
	if _, err := os.Stat(safePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewFileError(safePath, err)
		}
		return nil, apperrors.NewReadError(safePath, err)
	}

	config := tail.Config{
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}

	t, err := tail.TailFile(safePath, config)
	if err != nil {
		return nil, apperrors.NewFileError(safePath, err)
	}

	return &File{path: safePath, tail: t}, nil
}

// Path returns the cleaned path of the file.
func (f *File) Path() string {
	return f.path
}

// Each calls fn for every line in order with its 1-based number. It stops at
// end of file, at the first error returned by fn, or when ctx is done.
// Each 按顺序对每一行调用 fn（行号从 1 开始），在文件结束、fn 返回错误或 ctx 结束时停止。
func (f *File) Each(ctx context.Context, fn func(num int, text string) error) error {
	num := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrCanceled, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", apperrors.ErrCanceled, ctx.Err())
		case line, ok := <-f.tail.Lines:
			if !ok {
				if err := f.tail.Wait(); err != nil {
					return apperrors.NewReadError(f.path, err)
				}
				return nil
			}
			if line.Err != nil {
				return apperrors.NewReadError(f.path, line.Err)
			}
			num++
			if err := fn(num, line.Text); err != nil {
				return err
			}
		}
	}
}

// Close stops reading and releases the file handle. It is safe to call more
// than once and after a failed Each.
// Close 停止读取并释放文件句柄，可多次调用。
func (f *File) Close() error {
	f.closeOnce.Do(func() {
		// Unblock a reader goroutine parked on an unread line.
		go func() {
			for range f.tail.Lines {
			}
		}()
		// No inotify watch is registered without Follow, so no Cleanup.
		f.closeErr = f.tail.Stop()
	})
	return f.closeErr
}
