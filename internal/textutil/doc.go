// Package textutil provides Unicode-aware text measurement helpers shared
// across the editing core: word-character classification, grapheme cluster
// counting, terminal display width, and word wrapping.
//
// The package distinguishes three units of measurement. Runes are what the
// document model counts (columns, offsets). Grapheme clusters are what
// users perceive as characters and what the statistics report counts.
// Display columns are what a terminal cell renderer needs for alignment.
package textutil
