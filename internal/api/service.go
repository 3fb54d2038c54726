// Package api is the wire contract between the HopeKeeper client and server:
// a gRPC service described by hand and carried over a JSON codec, so both
// sides share plain Go structs instead of generated code.
package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "hopekeeper.v1.HopeKeeper"

const (
	MethodRegister     = "/" + ServiceName + "/Register"
	MethodGetSalt      = "/" + ServiceName + "/GetSalt"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodRefreshToken = "/" + ServiceName + "/RefreshToken"
	MethodList         = "/" + ServiceName + "/List"
	MethodInsert       = "/" + ServiceName + "/Insert"
	MethodUpdate       = "/" + ServiceName + "/Update"
	MethodDelete       = "/" + ServiceName + "/Delete"
)

// PublicMethods do not require an access token.
var PublicMethods = map[string]bool{
	MethodRegister:     true,
	MethodGetSalt:      true,
	MethodLogin:        true,
	MethodRefreshToken: true,
}

type HopeKeeperServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Insert(context.Context, *InsertRequest) (*InsertResponse, error)
	Update(context.Context, *UpdateRequest) (*UpdateResponse, error)
	Delete(context.Context, *DeleteRequest) (*DeleteResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HopeKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, HopeKeeperServer.Register),
		unary(MethodGetSalt, HopeKeeperServer.GetSalt),
		unary(MethodLogin, HopeKeeperServer.Login),
		unary(MethodRefreshToken, HopeKeeperServer.RefreshToken),
		unary(MethodList, HopeKeeperServer.List),
		unary(MethodInsert, HopeKeeperServer.Insert),
		unary(MethodUpdate, HopeKeeperServer.Update),
		unary(MethodDelete, HopeKeeperServer.Delete),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hopekeeper/v1/hopekeeper.json",
}

func RegisterHopeKeeperServer(s grpc.ServiceRegistrar, srv HopeKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](fullMethod string, call func(HopeKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: fullMethod[len(ServiceName)+2:],
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(HopeKeeperServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
