// Package sink provides output format renderers for measured decks.
//
// # JSON Output
//
// [RenderJSON] writes the snapshots together with a summary and, when given,
// the fitting records of the pass that produced them:
//
//	data, err := sink.RenderJSON(snaps,
//	    sink.WithJSONMode("screen"),
//	    sink.WithJSONRecords(records),
//	)
//
// # PNG Output
//
// [RenderPNG] draws a wireframe contact sheet with fogleman/gg. Each slide
// shows its frame, header, content box, text blocks and figure boxes.
// Figures outside the content box and overflowing content areas are drawn
// in red.
//
//	png, err := sink.RenderPNG(snaps, sink.WithScale(0.5), sink.WithColumns(3))
package sink
