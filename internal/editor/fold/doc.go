// Package fold detects and tracks collapsible regions in markdown-like
// text: heading sections and fenced code blocks.
//
// Detection is a heuristic line scan producing a State, a disposable
// cache keyed by region id. The State never owns document content;
// callers re-run detection when the document version moves and the dirty
// flag is set.
//
// A region's start line stays visible as the collapsible header, so
// ContainsLine is false for the start line and true through the inclusive
// end line.
package fold
