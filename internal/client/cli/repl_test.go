package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) rec(name string) error { f.calls = append(f.calls, name); return nil }

func (f *fakeExec) Ping(context.Context) error                   { return f.rec("ping") }
func (f *fakeExec) SetToken(context.Context) error               { return f.rec("token") }
func (f *fakeExec) AddPantryItem(context.Context) error          { return f.rec("additem") }
func (f *fakeExec) UpdatePantryItem(context.Context) error       { return f.rec("edititem") }
func (f *fakeExec) CreateShoppingList(context.Context) error     { return f.rec("newlist") }
func (f *fakeExec) AddToShoppingList(context.Context) error      { return f.rec("listadd") }
func (f *fakeExec) RemoveFromShoppingList(context.Context) error { return f.rec("listrm") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)
	in := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help", "", "ping", "token", "additem", "edititem", "newlist", "listadd", "listrm", "bogus", "exit", "ping",
	}, "\n")))

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "(online)" }, in)

	assert.Equal(t, []string{"ping", "token", "additem", "edititem", "newlist", "listadd", "listrm"}, f.calls)
	assert.Contains(t, *out, "Unknown command: bogus")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "pk (online)> ")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("ping")))
	assert.Equal(t, []string{"ping"}, f.calls)
}
