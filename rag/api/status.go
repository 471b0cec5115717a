package api

import (
	"context"
	"fmt"
	"time"

	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/lisa/rag/types"
)

// WaitForStatus polls fetch at the configured interval, see WaitForStatus
func (instance *Instance) WaitForStatus(ctx context.Context, fetch StatusFunc) (types.VectorStoreStatus, error) {
	return WaitForStatus(ctx, fetch, instance.Options.PollInterval)
}

// WaitForStatus polls fetch until the repository reaches a terminal status (*_COMPLETE or
// *_FAILED) or ctx is done. A failed status is returned together with an error.
func WaitForStatus(ctx context.Context, fetch StatusFunc, interval time.Duration) (types.VectorStoreStatus, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := fetch()
		if err != nil {
			return status, err
		}

		if status.IsTerminal() {
			if status.IsFailed() {
				return status, fmt.Errorf("deployment failed: %s", status)
			}
			return status, nil
		}
		log.Trace("[RAG] status %s, waiting %s", status, interval)

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}
