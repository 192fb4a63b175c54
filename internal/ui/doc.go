// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single screen with two panes:
//  1. Input : a textarea holding the text to save (ctrl+s saves, ctrl+v pastes, ctrl+x clears)
//  2. Saved Texts : the entry list with previews and dates (c/enter copies, d deletes, space marks, D deletes marked)
//
// tab moves focus between the panes. Copying shows a one-shot "Text Copied" confirmation that the next key dismisses.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Clipboard access runs in tea.Cmd functions so a slow clipboard never blocks rendering.
package ui
