// Package rlgfx implements the selection overlay collaborators on top of
// raylib: the window canvas, a Camera3D projector, a shader registry holding
// the dashed-line program and an immediate-mode line buffer.
//
// Everything here must be called from the thread that owns the raylib window.
package rlgfx
