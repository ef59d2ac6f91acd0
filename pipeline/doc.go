// Package pipeline wires the engine's stages into one analysis run.
//
// 🚀 Stages of Run:
//
//  1. scrub     - zero single-sample throughput glitches per cell
//  2. signals   - bucket packet counters into loss-fraction series
//  3. topology  - cluster cells into shared links (anchored)
//  4. demand    - aggregate symbol throughput into slot demand per link
//  5. capacity  - size every link with and without a switch buffer
//  6. attribute - rank the cells behind each congested slot
//  7. summarize - traffic summaries, risk assessment and loss timelines
//
// Every run owns its result: nothing is cached between calls and identical
// inputs produce identical results. WhatIf replays stages 5-7 on a scaled
// copy of a previous result's demand.
//
// Logging goes to an injected *zap.Logger (zap.NewNop by default) and stage
// metrics to an injected prometheus.Registerer (unregistered by default).
//
//	res, err := pipeline.Run(ctx, in, cfg,
//	    pipeline.WithLogger(logger),
//	    pipeline.WithRegisterer(reg))
package pipeline
