package service

import (
	"context"

	"go.uber.org/zap"
)

// FileCleaner deletes stored files in the background.
type FileCleaner struct {
	files  FileRemover
	runner Runner
	logger *zap.Logger
}

func NewFileCleaner(files FileRemover, runner Runner, logger *zap.Logger) *FileCleaner {
	return &FileCleaner{files: files, runner: runner, logger: logger}
}

// Discard schedules deletion of every non-empty URL. Failures are logged by
// the runner and never reach the caller.
func (c *FileCleaner) Discard(urls ...string) {
	var pending []string
	for _, u := range urls {
		if u != "" {
			pending = append(pending, u)
		}
	}
	if len(pending) == 0 {
		return
	}
	c.runner.Go("delete-files", func(ctx context.Context) error {
		var firstErr error
		for _, u := range pending {
			if err := c.files.Delete(ctx, u); err != nil {
				c.logger.Warn("delete stored file", zap.String("url", u), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		return firstErr
	})
}
