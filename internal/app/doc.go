// Package app wires the etudes components together.
//
// Startup runs in dependency order: configuration, logger, session, then
// the script host. Each step is undone in reverse if a later one fails.
//
//	a, err := app.New(app.Options{Kind: "paged", Capacity: "1MiB"})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	if err := a.Open("notes.txt"); err != nil {
//	    return err
//	}
//	err = a.Exec(ctx, "insert", []string{"0", "hello"}, os.Stdout)
package app
