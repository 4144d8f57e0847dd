// Package rpc exposes the engine over an HTTP JSON-RPC surface plus a
// websocket event feed.
package rpc

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *MethodRegistry
	service  *Service
	timeout  time.Duration
}

// NewServer builds a server with every method registered.
func NewServer(service *Service, timeout time.Duration) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		service:  service,
		timeout:  timeout,
	}
	server.registerAllMethods()
	return server
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		s.handleGetRequest(w, r)
	case http.MethodPost:
		s.handlePostRequest(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Health reports liveness. Wired at /health next to the RPC endpoint.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleGetRequest serves simple queries via ?command=, defaulting to
// server_info so a bare GET answers something useful.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}

	ctx := &RpcContext{
		Context:  r.Context(),
		Role:     RoleGuest,
		ClientIP: getClientIP(r),
	}
	result, rpcErr := s.executeMethod(method, nil, ctx)
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, RpcErrorInternal("failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, RpcErrorInvalidParams("invalid JSON: "+err.Error()))
		return
	}
	if request.Method == "" {
		s.writeResponse(w, nil, RpcErrorInvalidParams("missing method field"))
		return
	}

	// params is an array carrying a single object
	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	ctx := &RpcContext{
		Context:  r.Context(),
		Role:     RoleGuest,
		ClientIP: getClientIP(r),
	}
	result, rpcErr := s.executeMethod(request.Method, params, ctx)
	s.writeResponse(w, result, rpcErr)
}

func (s *Server) executeMethod(method string, params json.RawMessage, ctx *RpcContext) (interface{}, *RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, RpcErrorMethodNotFound(method)
	}
	if ctx.Role < handler.RequiredRole() {
		return nil, RpcErrorUnauthorized("method requires higher privileges")
	}
	return handler.Handle(ctx, params)
}

// writeResponse emits {"result": {...}} with status inside the result
// object, error fields flattened alongside it on failure.
func (s *Server) writeResponse(w http.ResponseWriter, result interface{}, rpcErr *RpcError) {
	response := make(map[string]interface{})

	if rpcErr != nil {
		response["result"] = map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		}
	} else if resultMap, ok := result.(map[string]interface{}); ok {
		resultMap["status"] = "success"
		response["result"] = resultMap
	} else {
		response["result"] = map[string]interface{}{
			"status": "success",
			"data":   result,
		}
	}

	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("rpc: marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
