package hostapi

import (
	"context"
	"fmt"
	"reflect"
)

// Bind returns a typed callable for the named operation. Req is converted
// to parameters through its JSON encoding and the response body is decoded
// into Resp. When the endpoint declares Request or Response prototypes, Req
// and Resp must match them.
func Bind[Req, Resp any](c *Client, name string) (TypedFunc[Req, Resp], error) {
	op, ok := c.operations[name]
	if !ok {
		return nil, unknownOperation(name)
	}
	if err := checkShape(op, "request", op.Request, reflect.TypeOf((*Req)(nil)).Elem()); err != nil {
		return nil, err
	}
	if err := checkShape(op, "response", op.Response, reflect.TypeOf((*Resp)(nil)).Elem()); err != nil {
		return nil, err
	}

	return func(ctx context.Context, req *Req, opts ...CallOption) (*Result[Resp], error) {
		var params Params
		if req != nil {
			p, err := ParamsFrom(req)
			if err != nil {
				return nil, err
			}
			params = p
		}
		env, err := c.Invoke(ctx, op, params, opts...)
		if err != nil {
			return nil, err
		}
		return decodeResult[Resp](env), nil
	}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[Req, Resp any](c *Client, name string) TypedFunc[Req, Resp] {
	fn, err := Bind[Req, Resp](c, name)
	if err != nil {
		panic(err)
	}
	return fn
}

func checkShape(op *Operation, kind string, declared, bound reflect.Type) error {
	if declared == nil || declared == bound {
		return nil
	}
	return &ClientError{
		Type:      ErrorTypeConfiguration,
		Message:   fmt.Sprintf("%s type %s does not match declared %s", kind, bound, declared),
		Cause:     ErrShapeMismatch,
		Operation: op.Name,
		Method:    op.Method,
	}
}
