package api

import (
	"context"
	"log/slog"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// metadataErrorReference is the gRPC header carrying the error reference.
const metadataErrorReference = "x-error-reference"

// GRPCStatus converts err to a gRPC status using the same two buckets as
// HTTP: record-not-found becomes NotFound and everything else
// InvalidArgument. The status message is the HTTP response body. Errors
// that already carry a gRPC status are returned as is.
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if _, isContainer := sserr.AsError(err); !isContainer {
		if st, ok := status.FromError(err); ok {
			return st
		}
	}
	return grpcStatus(containerOf(context.Background(), err).Response())
}

func grpcStatus(resp sserr.Response) *status.Status {
	code := codes.InvalidArgument
	if resp.Status == http.StatusNotFound {
		code = codes.NotFound
	}
	return status.New(code, string(resp.Body))
}

// UnaryServerInterceptor returns an interceptor that converts handler
// errors with [GRPCStatus], logging and counting them like
// [Responder.WriteError].
func (rs *Responder) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, rs.toStatus(ctx, info.FullMethod, err)
		}
		return resp, nil
	}
}

// StreamServerInterceptor is the streaming counterpart of
// [Responder.UnaryServerInterceptor].
func (rs *Responder) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if err := handler(srv, ss); err != nil {
			return rs.toStatus(ss.Context(), info.FullMethod, err)
		}
		return nil
	}
}

func (rs *Responder) toStatus(ctx context.Context, method string, err error) error {
	if _, isContainer := sserr.AsError(err); !isContainer {
		if _, ok := status.FromError(err); ok {
			return err
		}
	}

	e := containerOf(ctx, err)
	resp := e.Response()
	st := grpcStatus(resp)

	ref := rs.report(ctx, e, resp, st.Code().String(), slog.String("grpc.method", method))
	// Fails outside a live server stream; the reference is still logged.
	_ = grpc.SetHeader(ctx, metadata.Pairs(metadataErrorReference, ref))
	return st.Err()
}
