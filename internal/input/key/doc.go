// Package key provides the keyboard vocabulary of the interaction pipeline.
//
//   - Key: the small set of keys the viewer reacts to (arrows, Space,
//     Period, the modifier keys themselves)
//   - Modifier: Shift, Ctrl and Alt, encoded with the same bits that mouse
//     action codes use for them
//
// In navigation mode the arrow keys steer the camera; everywhere else only
// the modifier state is of interest, because it is folded into the action
// code of the next mouse event.
package key
