package assets

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/moverboard/pkg/cache"
)

type normalized struct {
	inner Resolver
	size  int
}

// Normalized wraps r so every raster result is cropped to a size×size PNG.
// Images that fail to decode are returned as resolved.
func Normalized(r Resolver, size int) Resolver {
	return &normalized{inner: r, size: size}
}

func (n *normalized) Resolve(ctx context.Context, ref string) (*Image, error) {
	img, err := n.inner.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if out, err := Normalize(img, n.size); err == nil {
		return out, nil
	}
	return img, nil
}

// CachedResolver stores resolved images in a [cache.Cache]. data: URIs
// bypass the cache since they carry their own bytes.
type CachedResolver struct {
	inner Resolver
	cache cache.Cache
	keyer cache.Keyer
	opts  cache.AssetKeyOpts
}

// Cached wraps r. size must match the normalization size of r so keys
// for different sizes never collide.
func Cached(r Resolver, c cache.Cache, keyer cache.Keyer, size int) *CachedResolver {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedResolver{inner: r, cache: c, keyer: keyer, opts: cache.AssetKeyOpts{Size: size}}
}

// Resolve returns the cached image for ref or resolves and stores it.
// Cache failures are ignored.
func (c *CachedResolver) Resolve(ctx context.Context, ref string) (*Image, error) {
	if Kind(ref) == KindData {
		return c.inner.Resolve(ctx, ref)
	}

	key := c.keyer.AssetKey(ref, c.opts)
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var img Image
		if json.Unmarshal(data, &img) == nil && len(img.Data) > 0 {
			img.cached = true
			return &img, nil
		}
	}

	img, err := c.inner.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(img); err == nil {
		_ = c.cache.Set(ctx, key, data, cache.TTLAsset)
	}
	return img, nil
}
