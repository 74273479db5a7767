// Package catalog implements the categorized preset cursor and cache.
//
// Three pieces cooperate here:
//
//   - Cache memoizes a Sorter's view of one catalog source: the ordered
//     category list and, lazily per category, the ordered item list.
//   - CursorTable maps each attached subject to its Cursor.
//   - Engine steps cursors forward and backward through the cached lists,
//     crossing category boundaries, skipping empty categories and wrapping at
//     the ends. It also re-derives every affected cursor after a source
//     mutation.
//
// A cursor's indices are never trusted on their own. They are always paired
// with the current item and re-resolved by identity after a structural
// change, so a background refresh never moves a subject's selection.
//
// All state is guarded by a single mutex in Engine. Sources and subjects
// report changes through listener callbacks, which must not be invoked while
// the caller holds the engine (Subject.Apply in particular must stay silent).
package catalog
