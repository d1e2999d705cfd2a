// Package flow is a deterministic block-flow layout host for decks.
//
// A [Host] lays every slide out in a fixed box: a padded inner container
// holding the wrapped title, the content area and the footer. Content
// children stack vertically with no collapsing margins. Text is wrapped with
// a [TextMeasurer]; figures are sized from their natural size and the hints
// written through the [measure.Port] methods; figure groups flow into the
// number of columns given by [measure.HintColumns].
//
// The host lays slides out lazily and only again after a hint on that slide
// changes, so a fitting pass that reads geometry after every write stays
// cheap. It switches between the screen viewport and the print page with
// [Host.EnterPrint] and [Host.ExitPrint].
//
// [Host.Snapshot] captures the measured state of every slide for JSON and
// PNG output.
package flow
