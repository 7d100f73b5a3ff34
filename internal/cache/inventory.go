package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	SegmentKeyPrefix  = "segment:%d"
	ChildrenKeyPrefix = "segment:%d:children"
)

const (
	SegmentTTL  = 30 * time.Minute
	ChildrenTTL = 2 * time.Minute
)

func SegmentKey(segmentID uint) string {
	return fmt.Sprintf(SegmentKeyPrefix, segmentID)
}

func ChildrenKey(parentID uint) string {
	return fmt.Sprintf(ChildrenKeyPrefix, parentID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateSegment drops the segment entry plus its parent's cached child
// list, which a new publication makes stale.
func InvalidateSegment(ctx context.Context, segmentID uint, parentID *uint) {
	Invalidate(ctx, SegmentKey(segmentID))
	if parentID != nil {
		Invalidate(ctx, ChildrenKey(*parentID))
	}
}
