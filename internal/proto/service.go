// Package proto holds the gRPC service definition of PantryKeeper
// (pantrykeeper.proto). Requests and responses are google.protobuf.Struct
// values, so the only generated types needed are the well-known ones in
// structpb and the service plumbing below is written by hand.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "pantrykeeper.v1.PantryKeeper"

const (
	MethodAddPantryItem              = "AddPantryItem"
	MethodUpdatePantryItem           = "UpdatePantryItem"
	MethodCreateShoppingList         = "CreateShoppingList"
	MethodAddItemToShoppingList      = "AddItemToShoppingList"
	MethodRemoveItemFromShoppingList = "RemoveItemFromShoppingList"
	MethodPing                       = "Ping"
)

// FullMethod returns the "/service/method" name used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PantryKeeperServer is the server API for the PantryKeeper service.
type PantryKeeperServer interface {
	AddPantryItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePantryItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddItemToShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveItemFromShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedPantryKeeperServer can be embedded for forward compatibility.
type UnimplementedPantryKeeperServer struct{}

func (UnimplementedPantryKeeperServer) AddPantryItem(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddPantryItem not implemented")
}
func (UnimplementedPantryKeeperServer) UpdatePantryItem(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePantryItem not implemented")
}
func (UnimplementedPantryKeeperServer) CreateShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateShoppingList not implemented")
}
func (UnimplementedPantryKeeperServer) AddItemToShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItemToShoppingList not implemented")
}
func (UnimplementedPantryKeeperServer) RemoveItemFromShoppingList(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItemFromShoppingList not implemented")
}
func (UnimplementedPantryKeeperServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

type unaryMethod func(PantryKeeperServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PantryKeeperServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PantryKeeperServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PantryKeeperServiceDesc is the grpc.ServiceDesc for the PantryKeeper service.
var PantryKeeperServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PantryKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodAddPantryItem, Handler: unaryHandler(MethodAddPantryItem, PantryKeeperServer.AddPantryItem)},
		{MethodName: MethodUpdatePantryItem, Handler: unaryHandler(MethodUpdatePantryItem, PantryKeeperServer.UpdatePantryItem)},
		{MethodName: MethodCreateShoppingList, Handler: unaryHandler(MethodCreateShoppingList, PantryKeeperServer.CreateShoppingList)},
		{MethodName: MethodAddItemToShoppingList, Handler: unaryHandler(MethodAddItemToShoppingList, PantryKeeperServer.AddItemToShoppingList)},
		{MethodName: MethodRemoveItemFromShoppingList, Handler: unaryHandler(MethodRemoveItemFromShoppingList, PantryKeeperServer.RemoveItemFromShoppingList)},
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, PantryKeeperServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pantrykeeper.proto",
}

func RegisterPantryKeeperServer(s grpc.ServiceRegistrar, srv PantryKeeperServer) {
	s.RegisterService(&PantryKeeperServiceDesc, srv)
}

// PantryKeeperClient is the client API for the PantryKeeper service.
type PantryKeeperClient interface {
	AddPantryItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdatePantryItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AddItemToShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveItemFromShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type pantryKeeperClient struct {
	cc grpc.ClientConnInterface
}

func NewPantryKeeperClient(cc grpc.ClientConnInterface) PantryKeeperClient {
	return &pantryKeeperClient{cc: cc}
}

func (c *pantryKeeperClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pantryKeeperClient) AddPantryItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAddPantryItem, in, opts)
}
func (c *pantryKeeperClient) UpdatePantryItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdatePantryItem, in, opts)
}
func (c *pantryKeeperClient) CreateShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateShoppingList, in, opts)
}
func (c *pantryKeeperClient) AddItemToShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAddItemToShoppingList, in, opts)
}
func (c *pantryKeeperClient) RemoveItemFromShoppingList(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRemoveItemFromShoppingList, in, opts)
}
func (c *pantryKeeperClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPing, in, opts)
}
