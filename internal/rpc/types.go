package rpc

import (
	"context"
	"encoding/json"
)

// Request is the JSON-RPC envelope accepted over HTTP POST.
// Format: {"method": "method_name", "params": [{...}]}
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`
}

// Role-based access control for method dispatch.
type Role int

const (
	RoleGuest Role = iota
	RoleAdmin
)

// RpcContext carries request-scoped information into handlers.
type RpcContext struct {
	Context  context.Context
	Role     Role
	ClientIP string
}

// MethodHandler is implemented by every dispatchable method.
type MethodHandler interface {
	Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError)
	RequiredRole() Role
}

// methodFunc adapts a plain function into a MethodHandler.
type methodFunc struct {
	fn   func(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError)
	role Role
}

func (m methodFunc) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return m.fn(ctx, params)
}

func (m methodFunc) RequiredRole() Role {
	return m.role
}

// MethodRegistry maps method names to handlers.
type MethodRegistry struct {
	methods map[string]MethodHandler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]MethodHandler)}
}

func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (MethodHandler, bool) {
	handler, exists := r.methods[name]
	return handler, exists
}

func (r *MethodRegistry) List() []string {
	methods := make([]string, 0, len(r.methods))
	for name := range r.methods {
		methods = append(methods, name)
	}
	return methods
}
