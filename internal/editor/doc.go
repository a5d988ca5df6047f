// Package editor holds the call-site state of the text widget: the
// optional active buffer and what the buffer itself does not track.
//
// A Session starts with no document. Operations on it fail with
// ErrNoDocument until a buffer is opened or attached; this replaces a
// placeholder buffer whose methods fail.
//
// Buffers report capacity, not content length. The Session tracks a logical
// length ("used") from the edits it forwards:
//
//   - Insert raises used to at least pos+len(text)
//   - Delete lowers used by the part of [start, end) that lay inside it
//
// For file-backed buffers the logical length is persisted to a small JSON
// sidecar next to the file so it survives a reopen. Without a sidecar, the
// length is recovered from the last non-zero byte.
//
// Observers registered with Observe are called after every change, outside
// the session lock.
package editor
