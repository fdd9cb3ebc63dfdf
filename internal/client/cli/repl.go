package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	Ping(ctx context.Context) error
	SetToken(ctx context.Context) error
	AddPantryItem(ctx context.Context) error
	UpdatePantryItem(ctx context.Context) error
	CreateShoppingList(ctx context.Context) error
	AddToShoppingList(ctx context.Context) error
	RemoveFromShoppingList(ctx context.Context) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit". Handlers
// prompt on the same reader.
//
//	help      list commands
//	ping      check the server
//	token     set the access token
//	additem   add a pantry item
//	edititem  update a pantry item
//	newlist   create a shopping list
//	listadd   add an item to a shopping list
//	listrm    remove an item from a shopping list
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: ping, token, additem, edititem, newlist, listadd, listrm, exit")
		case "ping":
			_ = a.Ping(ctx)
		case "token":
			_ = a.SetToken(ctx)
		case "additem":
			_ = a.AddPantryItem(ctx)
		case "edititem":
			_ = a.UpdatePantryItem(ctx)
		case "newlist":
			_ = a.CreateShoppingList(ctx)
		case "listadd":
			_ = a.AddToShoppingList(ctx)
		case "listrm":
			_ = a.RemoveFromShoppingList(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
