// Package fit is the adaptive slide fitting engine.
//
// Given slides that a host has already rendered, the engine searches for
// style hints (image max height, uniform figure scale, group columns, media
// spacing) that make each slide's content fit inside its fixed box. It never
// lays anything out itself: every decision is made by writing a hint through
// a [measure.Port] and reading fresh geometry back.
//
// # Passes
//
// [Engine.RunScreenFitPass] fits every slide for the on-screen viewport:
//
//  1. clear every screen hint the engine owns on the slide
//  2. skip the slide if its inner container is collapsed
//  3. pick a column count for every figure group ([ChooseColumns])
//  4. fit a lone figure with [Engine.FitSingle], or scale all figures
//     uniformly with [Engine.FitMultiple]
//  5. center a lone media block in the free space ([Engine.CenterIfLoneMedia])
//
// [Engine.BeginPrint] switches the host into its print flow, runs
// [Engine.RunPrintFitPass] and returns a release function that removes every
// print hint and switches the host back.
//
// Passes are idempotent: they start by clearing their own hints, so the
// result depends only on the current geometry and the content model.
//
// # Searches
//
// Every search is a bisection with a fixed iteration count. Precision is
// (high - low) / 2^iterations, which keeps a pass bounded regardless of how
// the host responds. When even the lowest allowed value overflows, the engine
// leaves that value applied and reports [FloorAccepted] rather than failing.
//
// # Observability
//
// An [observability.FitObserver] injected with [WithObserver] receives one
// [observability.SlideRecord] per slide per pass.
package fit
