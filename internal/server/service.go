// Package server exposes the fn front end as the gRPC service
// fnc.v1.ParseService. Requests and replies are google.protobuf.Struct
// messages.
package server

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/foundation/lang"
	"github.com/msto63/fnc/internal/store"
	"github.com/msto63/fnc/pkg/core/cache"
	fncgrpc "github.com/msto63/fnc/pkg/core/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "fnc.v1.ParseService"

// DefaultSourceName names requests that carry no name
const DefaultSourceName = "<request>"

// ParseServiceServer is the server API of fnc.v1.ParseService
type ParseServiceServer interface {
	Tokenize(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ParseServiceDesc describes fnc.v1.ParseService for grpc.Server
var ParseServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ParseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tokenize", Handler: unaryHandler("Tokenize", ParseServiceServer.Tokenize)},
		{MethodName: "Parse", Handler: unaryHandler("Parse", ParseServiceServer.Parse)},
		{MethodName: "History", Handler: unaryHandler("History", ParseServiceServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fnc/v1/parse.proto",
}

// RegisterParseServiceServer registers srv on s
func RegisterParseServiceServer(s grpc.ServiceRegistrar, srv ParseServiceServer) {
	s.RegisterService(&ParseServiceDesc, srv)
}

func unaryHandler(method string, call func(ParseServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ParseServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ParseServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Service implements ParseServiceServer on top of a lang.Engine. The
// history store and the reply caches are optional.
type Service struct {
	engine  *lang.Engine
	history *store.Store
	logger  *mdwlog.Logger

	tokenCache *cache.Cache[TokenizeReply]
	parseCache *cache.Cache[ParseReply]
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithReplyCache caches Tokenize replies and unrecorded Parse replies
func WithReplyCache(cfg cache.Config) ServiceOption {
	return func(s *Service) {
		s.tokenCache = cache.New[TokenizeReply](cfg)
		s.parseCache = cache.New[ParseReply](cfg)
	}
}

// NewService creates the parse service
func NewService(engine *lang.Engine, history *store.Store, logger *mdwlog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	s := &Service{
		engine:  engine,
		history: history,
		logger:  logger.WithField("component", "fnc-server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the reply caches
func (s *Service) Close() {
	if s.tokenCache != nil {
		s.tokenCache.Close()
		s.parseCache.Close()
	}
}

// CacheStats returns hits and misses of the Parse reply cache
func (s *Service) CacheStats() (hits, misses int64) {
	if s.parseCache == nil {
		return 0, 0
	}
	hits, misses, _ = s.parseCache.Stats()
	return hits, misses
}

// Tokenize handles {source} and replies {tokens, faults}
func (s *Service) Tokenize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	source, err := stringField(in, "source", true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	key := cache.Key(source)
	if s.tokenCache != nil {
		if reply, ok := s.tokenCache.Get(key); ok {
			return s.reply(reply)
		}
	}

	tokens, err := s.engine.Tokenize(source)
	if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	reply := NewTokenizeReply(tokens, err)
	if s.tokenCache != nil {
		s.tokenCache.Set(key, reply)
	}
	return s.reply(reply)
}

// Parse handles {name, source, record, stop_on_error} and replies with the
// dump of the program and its faults
func (s *Service) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	source, err := stringField(in, "source", true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	name, err := stringField(in, "name", false)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if name == "" {
		name = DefaultSourceName
	}
	record, err := boolField(in, "record")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	stopOnError, err := boolField(in, "stop_on_error")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	engine := s.engine
	if stopOnError {
		engine = s.engine.WithStopOnError(true)
	}
	if record && s.history == nil {
		return nil, status.Error(codes.FailedPrecondition, "history store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	key := cache.Key(name, source, strconv.FormatBool(engine.StopOnError()))
	if !record && s.parseCache != nil {
		if reply, ok := s.parseCache.Get(key); ok {
			reply.JobID = uuid.New()
			reply.Cached = true
			s.logger.Debug("Parse reply served from cache", mdwlog.Fields{
				"request_id": fncgrpc.GetRequestID(ctx),
				"job_id":     reply.JobID.String(),
			})
			return s.reply(reply)
		}
	}

	result, err := engine.Parse(name, source)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	reply := NewParseReply(result)
	if s.parseCache != nil {
		s.parseCache.Set(key, reply)
	}

	if record {
		if _, err := s.history.Record(ctx, result, source); err != nil {
			s.logger.WithRequestID(fncgrpc.GetRequestID(ctx)).LogError(err)
			return nil, storeStatus(err)
		}
		reply.Recorded = true
	}

	s.logger.Debug("Parse request served", mdwlog.Fields{
		"request_id": fncgrpc.GetRequestID(ctx),
		"job_id":     result.JobID.String(),
		"faults":     len(result.Faults),
	})
	return s.reply(reply)
}

// History handles {limit} and replies with the most recent recorded jobs
func (s *Service) History(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	limit, err := intField(in, "limit")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if s.history == nil {
		return nil, status.Error(codes.FailedPrecondition, "history store is not configured")
	}

	jobs, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, storeStatus(err)
	}
	if jobs == nil {
		jobs = []*store.Job{}
	}
	return s.reply(HistoryReply{Jobs: jobs})
}

func (s *Service) reply(v interface{}) (*structpb.Struct, error) {
	out, err := encode(v)
	if err != nil {
		s.logger.ErrorWithErr("Failed to encode reply", err)
		return nil, status.Error(codes.Internal, "failed to encode reply")
	}
	return out, nil
}

func storeStatus(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case mdwerror.HasCode(err, mdwerror.CodeNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}
