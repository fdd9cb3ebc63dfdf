// Package client contains the caller side of the PantryKeeper RPC gateway.
//
// The Client interface lists the operations a signed-in user can invoke:
// adding and updating pantry items, creating shopping lists and adding or
// removing list items, plus an unauthenticated Ping. GRPCClient implements
// it over gRPC, attaching the caller's access token to every call and
// mapping status codes to the sentinel errors in errors.go.
package client
