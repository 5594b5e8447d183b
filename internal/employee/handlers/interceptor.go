package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor propagates the x-request-id metadata value (generating
// one when absent) and logs every unary call with its status code.
type LoggingInterceptor struct {
	logger *zap.Logger
}

func NewLoggingInterceptor(logger *zap.Logger) *LoggingInterceptor {
	return &LoggingInterceptor{logger: logger.Named("grpc")}
}

// Unary returns a gRPC unary server interceptor.
func (i *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		rid := requestIDFromMetadata(ctx)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx = WithRequestID(ctx, rid)

		start := time.Now()
		resp, err := handler(ctx, req)

		i.logger.Info("call",
			zap.String("request_id", rid),
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(strings.ToLower(RequestIDHeader))
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
