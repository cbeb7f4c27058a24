package snapshot

import (
	"context"
	"fmt"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Bucket stores each blob as an object named after its key
type Bucket struct {
	bucket  *blob.Bucket
	timeout time.Duration
}

func NewBucket(bucket *blob.Bucket, timeout time.Duration) *Bucket {
	return &Bucket{bucket: bucket, timeout: timeout}
}

func (b *Bucket) Load(ctx context.Context, key string) ([]byte, error) {
	bCtx, bCancel := withTimeout(ctx, b.timeout)
	defer bCancel()
	data, err := b.bucket.ReadAll(bCtx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from bucket: %w", key, err)
	}
	return data, nil
}

func (b *Bucket) Save(ctx context.Context, key string, data []byte) error {
	bCtx, bCancel := withTimeout(ctx, b.timeout)
	defer bCancel()
	if err := b.bucket.WriteAll(bCtx, key, data, &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("failed to write %s to bucket: %w", key, err)
	}
	return nil
}
