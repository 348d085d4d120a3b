// Package stats computes text and markdown metrics for a document.
//
// TextStats counts words, characters, lines, paragraphs, and sentences
// in a single pass over the content. DocumentStats layers markdown
// awareness on top: headings by level, fenced code blocks, links,
// images, blockquotes, list items, and table rows, plus an estimated
// reading time.
//
// All counts are heuristic and cheap enough to recompute on every
// content change; nothing is cached between calls.
package stats
