// Package api provides the Lua modules exposed to etude scripts.
//
// Scripts see each module as a global table:
//
//   - buf: edits and reads on the session's active buffer
//   - text: grapheme and width helpers for decoded text
//
// Offsets are zero-based byte offsets, matching the Go buffer API. Errors
// from the buffer (out of bounds, invalid range, invalid encoding, no
// document) are raised as Lua errors, so a script can trap them with pcall.
//
//	buf.insert(0, "hello")
//	local ok, err = pcall(buf.slice, 0, 99999)
//	print(buf.text(), text.graphemes(buf.text()))
package api
