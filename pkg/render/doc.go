// Package render turns measured decks into output artifacts.
//
// The [sink] subpackage holds the output formats:
//
//   - JSON: the full measured snapshot of every slide plus the fitting
//     records, for tooling and the HTTP API
//   - PNG: a contact sheet of wireframe slides with overflow highlighted,
//     for quick visual review
//
// Both sinks work on [flow.SlideSnapshot] values and never touch the deck
// or the fitting engine.
package render
