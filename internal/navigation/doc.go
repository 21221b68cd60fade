// Package navigation implements the viewer's perspective camera.
//
// The camera places the model in front of a pinhole camera at a distance
// of CameraDepth screen sizes. Points are rotated about the rotation
// centre, scaled to pixels and divided by their distance from the camera:
//
//	screen.xy = raw.xy * referencePlaneOffset / raw.z + offset
//
// In standard mode the rotation centre sits on the reference plane and the
// zoom rescales the model. In navigation mode the camera flies: the zoom
// and the arrow keys move the camera along its line of sight, and rotation
// turns the camera about the navigation centre, the model point that sits
// on the reference plane at the navigation offset on screen.
//
// Each camera operation records a pending Mode; the next recompute resolves
// it with Transition and runs the resulting Effects. Timed moves are handed
// to an Animator (see package animate).
package navigation
