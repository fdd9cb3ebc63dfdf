package grpc

import (
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"google.golang.org/protobuf/types/known/structpb"
)

// payload is a decoded request object. A key that is absent or null counts
// as not supplied.
type payload map[string]any

func decode(in *structpb.Struct) payload {
	if in == nil {
		return payload{}
	}
	return payload(in.AsMap())
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, fmt.Sprintf(format, args...))
}

func (p payload) optionalString(key string) (*string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalidArg("%s must be a string", key)
	}
	return &s, nil
}

// requiredString fails unless key holds a non-empty string.
func (p payload) requiredString(key string) (string, error) {
	s, err := p.optionalString(key)
	if err != nil {
		return "", err
	}
	if s == nil || *s == "" {
		return "", invalidArg("%s is required", key)
	}
	return *s, nil
}

func (p payload) optionalNumber(key string) (*float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, invalidArg("%s must be a number", key)
	}
	return &f, nil
}

func (p payload) optionalObject(key string) (map[string]any, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidArg("%s must be an object", key)
	}
	return m, nil
}

// optionalNumberMap reads an object whose values are all numbers.
func (p payload) optionalNumberMap(key string) (map[string]float64, error) {
	m, err := p.optionalObject(key)
	if err != nil || m == nil {
		return nil, err
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		f, ok := v.(float64)
		if !ok {
			return nil, invalidArg("%s.%s must be a number", key, k)
		}
		out[k] = f
	}
	return out, nil
}

func result(fields map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(fields)
}

func success() (*structpb.Struct, error) {
	return result(map[string]any{"success": true})
}
