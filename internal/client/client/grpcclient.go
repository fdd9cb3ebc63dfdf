package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	pb "github.com/dmitrijs2005/pantrykeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.PantryKeeperClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewPantryKeeperClient dials endpointURL without transport security. Extra
// dial options are appended, which tests use to plug in a bufconn dialer.
func NewPantryKeeperClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, dialOpts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPantryKeeperClient(conn)
	return nil
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetFields()["status"].GetStringValue() != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) AddPantryItem(ctx context.Context, item PantryItem) (string, error) {
	data := map[string]any{"name": item.Name}
	putNumber(data, "calories", item.Calories)
	putNumber(data, "servings", item.Servings)
	putNumber(data, "likability", item.Likability)
	if item.Macros != nil {
		macros := make(map[string]any, len(item.Macros))
		for k, v := range item.Macros {
			macros[k] = v
		}
		data["macros"] = macros
	}

	resp, err := s.call(ctx, s.client.AddPantryItem, data)
	if err != nil {
		return "", err
	}
	return resp.GetFields()["pantryItemId"].GetStringValue(), nil
}

func (s *GRPCClient) UpdatePantryItem(ctx context.Context, itemID string, fields map[string]any) error {
	_, err := s.call(ctx, s.client.UpdatePantryItem, map[string]any{
		"pantryItemId":   itemID,
		"fieldsToUpdate": fields,
	})
	return err
}

func (s *GRPCClient) CreateShoppingList(ctx context.Context, list ShoppingList) (string, error) {
	data := map[string]any{}
	if list.Title != nil {
		data["title"] = *list.Title
	}
	if list.Store != nil {
		data["store"] = *list.Store
	}

	resp, err := s.call(ctx, s.client.CreateShoppingList, data)
	if err != nil {
		return "", err
	}
	return resp.GetFields()["listId"].GetStringValue(), nil
}

func (s *GRPCClient) AddItemToShoppingList(ctx context.Context, listID, itemName string, quantity *float64) error {
	data := map[string]any{"listId": listID, "itemName": itemName}
	putNumber(data, "quantity", quantity)
	_, err := s.call(ctx, s.client.AddItemToShoppingList, data)
	return err
}

func (s *GRPCClient) RemoveItemFromShoppingList(ctx context.Context, listID, itemName string) error {
	_, err := s.call(ctx, s.client.RemoveItemFromShoppingList, map[string]any{
		"listId":   listID,
		"itemName": itemName,
	})
	return err
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (s *GRPCClient) call(ctx context.Context, method rpc, data map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	resp, err := method(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func putNumber(data map[string]any, key string, v *float64) {
	if v != nil {
		data[key] = *v
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.NotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
