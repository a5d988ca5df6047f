package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
)

// commandHandler runs one command against the application.
type commandHandler func(ctx context.Context, app *Application, args []string, out io.Writer) error

type command struct {
	usage   string
	nargs   int
	handler commandHandler
}

var commands = map[string]command{
	"insert": {usage: "insert POS TEXT", nargs: 2, handler: handleInsert},
	"delete": {usage: "delete START END", nargs: 2, handler: handleDelete},
	"slice":  {usage: "slice START END", nargs: 2, handler: handleSlice},
	"view":   {usage: "view START END", nargs: 2, handler: handleView},
	"info":   {usage: "info", nargs: 0, handler: handleInfo},
	"run":    {usage: "run SCRIPT", nargs: 1, handler: handleRun},
}

// Commands returns the usage line of every command, sorted by name.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	usages := make([]string, len(names))
	for i, name := range names {
		usages[i] = commands[name].usage
	}
	return usages
}

// Exec runs the named command against the active document, writing any
// output to out.
func (app *Application) Exec(ctx context.Context, name string, args []string, out io.Writer) error {
	if app.isClosed() {
		return ErrClosed
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if len(args) != cmd.nargs {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}

	app.logger.WithComponent("command").Debug("%s %q", name, args)
	return cmd.handler(ctx, app, args, out)
}

func handleInsert(_ context.Context, app *Application, args []string, _ io.Writer) error {
	pos, err := parseOffset("POS", args[0])
	if err != nil {
		return err
	}
	if err := app.session.Insert(pos, args[1]); err != nil {
		return NewOperationError("insert", app.session.Path(), err)
	}
	return nil
}

func handleDelete(_ context.Context, app *Application, args []string, _ io.Writer) error {
	start, end, err := parseRange(args)
	if err != nil {
		return err
	}
	if err := app.session.Delete(start, end); err != nil {
		return NewOperationError("delete", app.session.Path(), err)
	}
	return nil
}

func handleSlice(_ context.Context, app *Application, args []string, out io.Writer) error {
	start, end, err := parseRange(args)
	if err != nil {
		return err
	}
	text, err := app.session.Slice(start, end)
	if err != nil {
		return NewOperationError("slice", app.session.Path(), err)
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func handleView(_ context.Context, app *Application, args []string, out io.Writer) error {
	start, end, err := parseRange(args)
	if err != nil {
		return err
	}
	v, err := app.session.View(start, end)
	if err != nil {
		return NewOperationError("view", app.session.Path(), err)
	}
	_, err = fmt.Fprintf(out, "range:     %s\ngraphemes: %d\nwidth:     %d\npadding:   %d\n%s\n",
		v.Range, v.Graphemes, v.Width, v.Padding, v.Text)
	return err
}

func handleInfo(_ context.Context, app *Application, _ []string, out io.Writer) error {
	s := app.session
	kind, err := s.Kind()
	if err != nil {
		return NewOperationError("info", s.Path(), err)
	}
	_, err = fmt.Fprintf(out, "path:     %s\nkind:     %s\ncapacity: %s (%d bytes)\nused:     %s (%d bytes)\nsession:  %s\n",
		s.Path(), kind,
		humanize.IBytes(uint64(s.Len())), s.Len(),
		humanize.IBytes(uint64(s.Used())), s.Used(),
		s.ID())
	return err
}

func handleRun(ctx context.Context, app *Application, args []string, _ io.Writer) error {
	return app.RunScript(ctx, args[0])
}

func parseOffset(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %q", ErrUsage, name, s)
	}
	return n, nil
}

func parseRange(args []string) (int, int, error) {
	start, err := parseOffset("START", args[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseOffset("END", args[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
