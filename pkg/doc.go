// Package pkg provides the core libraries for slidefit.
//
// # Overview
//
// slidefit turns a markdown deck into slides and scales their figures until
// every slide fits its viewport or printed page. The pkg directory is
// organized into these areas:
//
//  1. [deck] - Markdown segmentation and the slide node tree
//  2. [fit] - The fitting engine (overflow, column choice, figure scaling, print)
//  3. [measure] - The measurement port the engine reads boxes through
//  4. [flow] - A deterministic block-flow host implementing the port
//  5. [pipeline] - Orchestration (build → fit → render) with caching
//  6. [render] - JSON snapshots and PNG contact sheets
//  7. [server] - The HTTP API
//
// Supporting packages: [cache], [config], [errors], [geom],
// [observability], [schedule] and [buildinfo].
//
// # Architecture
//
//	markdown + images
//	         ↓
//	    [deck] package (slides, figures, groups)
//	         ↓
//	    [flow] host ← hints ← [fit] engine
//	         ↓
//	    snapshots → [render/sink] → JSON / PNG
//
// The engine never touches layout directly: it reads boxes from a
// [measure.Port] and writes named hints back. Any host that can lay out the
// slide tree can run it.
//
// # Quick Start
//
//	d, err := deck.Parse(markdown)
//	if err != nil {
//	    return err
//	}
//	host := flow.New(d.Slides)
//	engine := fit.New(host)
//	engine.RunScreenFitPass(ctx, d.Slides)
//	snaps := host.Snapshot()
//
// Or run everything with caching:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Input{Markdown: md}, pipeline.Options{})
package pkg
