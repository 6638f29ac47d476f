// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing matches:
//  1. [MatchListView] : Browse matches with filter-as-you-type search
//  2. [MatchDetailView] : Inspect one match and its comments
//  3. [SnapshotView] : Monitor a bulk snapshot run
//  4. [ResultView] : Display the snapshot outcome
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the FlowEngine, providing non-blocking
// status reporting during snapshots.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, s, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
