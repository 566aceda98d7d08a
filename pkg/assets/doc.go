// Package assets resolves logo and background references into image bytes.
//
// A reference is one of:
//
//   - an http(s) URL, fetched with a resty client and retried on 5xx,
//     429 and network failures
//   - a data: URI, decoded in place
//   - a local file path, read relative to a base directory
//
// [Mux] dispatches a reference to the matching [Resolver]. Wrap it with
// [Normalized] to crop logos to a square PNG, and with [Cached] to keep
// results in a [cache.Cache] across runs:
//
//	r := assets.Cached(assets.Normalized(assets.NewMux(), 192), c, keyer)
//	logos := assets.ResolvePage(ctx, r, page.Records, 8)
//
// Resolution never fails a render. [Resolve] and [ResolvePage] log the
// problem and return nil, and the page draws its fallback badge instead.
package assets
