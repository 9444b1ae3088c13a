package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pawfolio/models"
)

func makeWrites(n int) []*models.Booking {
	writes := make([]*models.Booking, n)
	for i := range writes {
		writes[i] = &models.Booking{ID: fmt.Sprintf("b-%04d", i), Status: models.StatusPending}
	}
	return writes
}

func TestBatchCommitChunksInOrder(t *testing.T) {
	var chunkSizes []int
	batch := &BatchWriteCoordinator{
		ChunkSize: 500,
		Insert: func(ctx context.Context, chunk []*models.Booking) error {
			chunkSizes = append(chunkSizes, len(chunk))
			return nil
		},
	}

	result, err := batch.Commit(context.Background(), makeWrites(1200))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.CommittedCount != 1200 {
		t.Errorf("CommittedCount = %d, want 1200", result.CommittedCount)
	}
	if result.FailedChunk != -1 {
		t.Errorf("FailedChunk = %d, want -1", result.FailedChunk)
	}
	want := []int{500, 500, 200}
	if len(chunkSizes) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunkSizes), len(want))
	}
	for i := range want {
		if chunkSizes[i] != want[i] {
			t.Errorf("chunk %d has %d writes, want %d", i, chunkSizes[i], want[i])
		}
	}
}

func TestBatchCommitAbortsAfterFailedChunk(t *testing.T) {
	calls := 0
	batch := &BatchWriteCoordinator{
		ChunkSize: 500,
		Insert: func(ctx context.Context, chunk []*models.Booking) error {
			calls++
			if calls == 2 {
				return errors.New("store rejected the transaction")
			}
			return nil
		},
	}

	result, err := batch.Commit(context.Background(), makeWrites(1200))

	var partial PartialBatchError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialBatchError, got %v", err)
	}
	if partial.CommittedCount != 500 {
		t.Errorf("CommittedCount = %d, want 500", partial.CommittedCount)
	}
	if partial.FailedChunk != 1 {
		t.Errorf("FailedChunk = %d, want 1", partial.FailedChunk)
	}
	if partial.TotalWrites != 1200 {
		t.Errorf("TotalWrites = %d, want 1200", partial.TotalWrites)
	}
	if result.FailedChunk != 1 {
		t.Errorf("result FailedChunk = %d, want 1", result.FailedChunk)
	}
	// The third chunk must never be attempted.
	if calls != 2 {
		t.Errorf("insert called %d times, want 2", calls)
	}
}

func TestBatchCommitDefaultChunkSize(t *testing.T) {
	calls := 0
	batch := &BatchWriteCoordinator{
		Insert: func(ctx context.Context, chunk []*models.Booking) error {
			calls++
			return nil
		},
	}

	result, err := batch.Commit(context.Background(), makeWrites(600))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if calls != 2 {
		t.Errorf("insert called %d times, want 2 (default chunk size %d)", calls, DefaultChunkSize)
	}
	if result.CommittedCount != 600 {
		t.Errorf("CommittedCount = %d, want 600", result.CommittedCount)
	}
}

func TestBatchCommitEmpty(t *testing.T) {
	batch := &BatchWriteCoordinator{
		Insert: func(ctx context.Context, chunk []*models.Booking) error {
			t.Fatal("insert should not be called for an empty batch")
			return nil
		},
	}

	result, err := batch.Commit(context.Background(), nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.CommittedCount != 0 || result.FailedChunk != -1 {
		t.Errorf("got %+v, want zero commits and no failed chunk", result)
	}
}
