package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler processes one newly dropped video file.
type JobHandler func(ctx context.Context, videoPath string) error
