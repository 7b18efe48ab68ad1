// Package ui contains the Bubble Tea program that drives the radial
// shell. The Model type focuses on message orchestration; dedicated
// helpers own pointer simulation, navigation, filtering, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so
//     a focused function handles it (key presses, async load results,
//     cache invalidation events, resize).
//   - All engine mutation happens inside Update. Content fetches run
//     as tea.Cmd values on background goroutines and marshal their
//     results back as childrenLoadedMsg, which Update hands to
//     engine.CompleteNavigate for re-validation.
//
// Pointer simulation:
//   - A terminal has no free-floating cursor, so the model keeps a
//     simulated pointer as a polar coordinate around the ring center.
//     Arrow keys rotate it along the active ring or step it radially;
//     every move is resolved through engine.PointerMoved so hover,
//     dismissal, and boundary-cross semantics match a real pointer.
//
// External change handling:
//   - A cache.Watcher streams directory invalidation events; Update
//     waits on them and asks the dispatcher whether the affected
//     directory backs an open ring. When it does, a reload command
//     re-reads the listing and engine.RefreshRing swaps it in place.
package ui
