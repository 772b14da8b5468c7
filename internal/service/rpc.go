// Package service implements the Connect RPC services for smart-split.
//
// The services exchange hand-written DTOs encoded with a JSON codec instead
// of schema-generated messages; handlers and clients are assembled with
// connect.NewUnaryHandler / connect.NewClient directly.
package service

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
)

// Procedure path prefixes, in Connect's /package.Service/ form.
const (
	AuthServicePath       = "/smartsplit.v1.AuthService/"
	GroupServicePath      = "/smartsplit.v1.GroupService/"
	ExpenseServicePath    = "/smartsplit.v1.ExpenseService/"
	SettlementServicePath = "/smartsplit.v1.SettlementService/"
)

// jsonCodec encodes requests and responses with encoding/json so plain Go
// structs can travel over Connect.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}

// route registers one unary procedure on the mux.
func route[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// handlerOptions prepends the JSON codec to caller-supplied options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// NewClient builds a Connect client for one procedure using the same JSON
// codec the handlers serve. Procedure is a service path constant plus the
// method name, e.g. SettlementServicePath + "ComputeSettlement".
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, connect.WithCodec(jsonCodec{}))
}

// NewAuthServiceHandler mounts the auth procedures and returns the path
// prefix to register them under.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, AuthServicePath+"Register", svc.Register, opts)
	route(mux, AuthServicePath+"Login", svc.Login, opts)
	return AuthServicePath, mux
}

// NewGroupServiceHandler mounts the group procedures.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, GroupServicePath+"CreateGroup", svc.CreateGroup, opts)
	route(mux, GroupServicePath+"GetGroup", svc.GetGroup, opts)
	route(mux, GroupServicePath+"ListGroups", svc.ListGroups, opts)
	route(mux, GroupServicePath+"UpdateGroup", svc.UpdateGroup, opts)
	route(mux, GroupServicePath+"DeleteGroup", svc.DeleteGroup, opts)
	route(mux, GroupServicePath+"AddGroupMembers", svc.AddGroupMembers, opts)
	return GroupServicePath, mux
}

// NewExpenseServiceHandler mounts the expense procedures.
func NewExpenseServiceHandler(svc *ExpenseService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, ExpenseServicePath+"CreateExpense", svc.CreateExpense, opts)
	route(mux, ExpenseServicePath+"GetExpense", svc.GetExpense, opts)
	route(mux, ExpenseServicePath+"ListExpenses", svc.ListExpenses, opts)
	route(mux, ExpenseServicePath+"UpdateExpense", svc.UpdateExpense, opts)
	route(mux, ExpenseServicePath+"DeleteExpense", svc.DeleteExpense, opts)
	return ExpenseServicePath, mux
}

// NewSettlementServiceHandler mounts the settlement procedures.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, SettlementServicePath+"ComputeSettlement", svc.ComputeSettlement, opts)
	route(mux, SettlementServicePath+"RecordSettlement", svc.RecordSettlement, opts)
	route(mux, SettlementServicePath+"ListSettlements", svc.ListSettlements, opts)
	route(mux, SettlementServicePath+"DeleteSettlement", svc.DeleteSettlement, opts)
	return SettlementServicePath, mux
}
