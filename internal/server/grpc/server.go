package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	pb "github.com/dmitrijs2005/pantrykeeper/internal/proto"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"google.golang.org/grpc"
)

// PantryService is the pantry business logic the gateway dispatches to.
type PantryService interface {
	AddItem(ctx context.Context, userID string, in services.PantryItemOptions) (string, error)
	UpdateItem(ctx context.Context, userID, itemID string, fields map[string]any) error
}

// ShoppingListService is the shopping list business logic the gateway
// dispatches to.
type ShoppingListService interface {
	CreateList(ctx context.Context, userID string, in services.ShoppingListOptions) (string, error)
	AddItem(ctx context.Context, userID, listID string, in services.ShoppingListItemOptions) error
	RemoveItem(ctx context.Context, userID, listID, itemName string) error
}

type GRPCServer struct {
	pb.UnimplementedPantryKeeperServer
	address   string
	pantry    PantryService
	lists     ShoppingListService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ps PantryService, ls ShoppingListService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		pantry:    ps,
		lists:     ls,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterPantryKeeperServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
