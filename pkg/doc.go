// Package pkg provides the core libraries for Moverboard.
//
// # Overview
//
// Moverboard turns a day's list of stock movers into fixed-size chart
// pages. Each page is a table of up to seven rows (logo, ticker, company,
// wrapped driver text and a colored percent change) under a two-line
// title. The pkg directory is organized into four areas:
//
//  1. [chart] - The request model and its exhaustive validator
//  2. [render] - Pure layout and drawing, split into small packages under render/board
//  3. [pipeline] - Orchestration (validate → plan → compose → render) for CLI and API
//  4. Infrastructure: [assets], [cache], [store], [server], [config], [io]
//
// # Architecture
//
// The data flow through Moverboard:
//
//	JSON / XLSX input
//	       ↓
//	  [chart] Validate (every problem, never just the first)
//	       ↓
//	  render/board/layout (pages of seven, row geometry)
//	       ↓
//	  [assets] (logos and background, fallbacks on failure)
//	       ↓
//	  render/board/compose (scene per page)
//	       ↓
//	  render/board/sink → SVG/PNG/PDF/JSON
//
// # Quick Start
//
//	req, err := pipeline.ParseRequest(data, false)
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewMemoryCache(time.Minute), nil,
//	    assets.New(assets.Config{}, nil, nil), logger)
//	result, err := runner.Execute(ctx, req, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	err = io.ExportPages("out", req.TitleMain, result.Formats, result)
//
// # Main Packages
//
// [errors] - Error codes shared by CLI and API, the exhaustive [errors.InputError]
// and reference validation.
//
// [observability] - Hook registry for validation, pagination, composition,
// rendering, asset resolution, cache and HTTP client events.
//
// [cache] - Asset and artifact caching with file, memory (go-cache) and
// Redis backends.
//
// [httputil] - The resty client, status classification and retry helpers
// used to fetch logos.
//
// [store] - Finished renders for the HTTP API, kept in memory, on disk, in
// Redis or in MongoDB.
//
// # Testing
//
//	go test ./pkg/...
//	MOVERBOARD_TEST_REDIS_URL=redis://localhost:6379 go test ./pkg/store/...
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/chart
// [render]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/pipeline
// [assets]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/assets
// [cache]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/moverboard/pkg/httputil
package pkg
