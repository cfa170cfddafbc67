package assets

import (
	"context"
	"fmt"

	"cartkeep/internal/artwork"
	"cartkeep/internal/fileutil"
)

// CopyResizer satisfies artwork.Resizer by fetching the source through the
// cache and copying its bytes into every slot path unchanged. Actual pixel
// scaling is an external collaborator; the slot dimensions are advisory for
// providers that do scale.
type CopyResizer struct {
	Cache *Cache
}

// Resize fetches sourceURL once and writes it to every target path.
func (r *CopyResizer) Resize(ctx context.Context, sourceURL, ownerTitle string, targets []artwork.Target) error {
	if r == nil || r.Cache == nil {
		return fmt.Errorf("artwork resize: cache not configured")
	}
	local, err := r.Cache.GetLocalPath(ctx, sourceURL, "")
	if err != nil {
		return fmt.Errorf("artwork resize for %q: %w", ownerTitle, err)
	}
	for _, target := range targets {
		if _, err := fileutil.CopyIfNewer(local, target.Path); err != nil {
			return fmt.Errorf("artwork resize for %q slot %s: %w", ownerTitle, target.Slot, err)
		}
	}
	return nil
}
