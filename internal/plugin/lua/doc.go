// Package lua runs user scripts in a sandboxed gopher-lua state.
//
// Only the base, table, string and math libraries are opened. File and
// code-loading globals are removed, and print writes to a configurable
// writer instead of stdout.
//
// Each run is bounded by a timeout enforced through the state's context:
//
//	state, err := lua.NewState(lua.WithTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "edit.lua"); err != nil {
//	    return err
//	}
//
// A State is not safe for use from multiple goroutines at once; runs are
// serialized by an internal mutex.
package lua
