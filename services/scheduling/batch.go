package scheduling

import (
	"context"

	"go.uber.org/zap"

	"pawfolio/models"
	"pawfolio/utils"
)

// DefaultChunkSize matches the record store's per-transaction operation
// ceiling.
const DefaultChunkSize = 500

// BatchResult reports what a chunked commit achieved. FailedChunk is -1
// when every chunk landed.
type BatchResult struct {
	CommittedCount int
	FailedChunk    int
}

// BatchWriteCoordinator splits a large list of booking writes into
// bounded chunks and commits them strictly in order. A chunk failure
// aborts the remaining chunks; there is no automatic retry and no
// compensating rollback of chunks already committed.
type BatchWriteCoordinator struct {
	ChunkSize int
	// Insert commits one chunk atomically.
	Insert func(ctx context.Context, chunk []*models.Booking) error
}

// Commit writes every booking, chunked. On a chunk failure the returned
// error is a PartialBatchError carrying the committed count and the
// 0-based index of the failing chunk.
func (b *BatchWriteCoordinator) Commit(ctx context.Context, writes []*models.Booking) (BatchResult, error) {
	chunkSize := b.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	result := BatchResult{FailedChunk: -1}
	for i, idx := 0, 0; i < len(writes); i, idx = i+chunkSize, idx+1 {
		end := i + chunkSize
		if end > len(writes) {
			end = len(writes)
		}
		chunk := writes[i:end]

		if err := b.Insert(ctx, chunk); err != nil {
			result.FailedChunk = idx
			utils.GetLogger().Error("batch chunk commit failed",
				zap.Int("chunk", idx),
				zap.Int("committed", result.CommittedCount),
				zap.Int("total", len(writes)),
				zap.Error(err))
			return result, PartialBatchError{
				CommittedCount: result.CommittedCount,
				FailedChunk:    idx,
				TotalWrites:    len(writes),
				Err:            err,
			}
		}
		result.CommittedCount += len(chunk)
	}
	return result, nil
}
