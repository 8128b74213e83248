// Package infinity assembles multi-asset time-series charts from historical
// market data. It is designed to be local-first and reproducible: everything a
// chart needs is described by a serializable project, and rendering the same
// project twice over the same data yields the same dataset.
//
// The core functionalities include:
//   - Exclusion Engine: Removing user-specified dates and date ranges from a
//     price series while tracking the removed timestamps as explicit gaps,
//     never interpolating over them.
//   - Resampler: Converting a daily series into coarser calendar-aligned
//     buckets (weekly, monthly, or every N days) with OHLC-correct
//     aggregation rules.
//   - Chart Assembler: Merging several independently filtered and resampled
//     series onto a single shared time axis, keeping non-trading days of one
//     asset explicitly absent rather than zero-filled.
//   - Project Model: Serializing chart configurations (assets, chart type,
//     resolution, time range, exclusions) to a forward-readable JSON document
//     that reconstructs the exact same chart on load.
//
// This package contains pure computation only. Fetching market data and
// caching it on disk is the job of the store package; providers live in their
// own packages. The `infinity` command-line tool wires everything together.
package infinity
