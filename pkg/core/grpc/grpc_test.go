package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/fnc.v1.ParseService/Parse"}

func discardLogger() *logging.Logger {
	return logging.Wrap("test", mdwlog.Discard())
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(discardLogger())

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("Expected Internal, got %v", err)
	}

	resp, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Errorf("Expected pass-through, got %v, %v", resp, err)
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{
			name: "from metadata",
			ctx:  metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-42")),
			want: "req-42",
		},
		{
			name: "generated",
			ctx:  context.Background(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			_, err := interceptor(tt.ctx, nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
				seen = GetRequestID(ctx)
				return nil, nil
			})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if tt.want != "" && seen != tt.want {
				t.Errorf("Expected request ID %q, got %q", tt.want, seen)
			}
			if seen == "" {
				t.Error("Expected a request ID in the handler context")
			}
		})
	}
}

func TestTimeoutInterceptor(t *testing.T) {
	_, _ = TimeoutInterceptor(time.Second)(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("Expected a deadline")
		}
		return nil, nil
	})

	_, _ = TimeoutInterceptor(0)(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Error("Expected no deadline for a zero timeout")
		}
		return nil, nil
	})
}

func TestLoggingInterceptor_PassesErrors(t *testing.T) {
	want := status.Error(codes.InvalidArgument, "bad")
	_, err := LoggingInterceptor(discardLogger())(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Errorf("Expected handler error, got %v", err)
	}
}

func TestClientRequestIDInterceptor(t *testing.T) {
	ctx := WithRequestID(context.Background(), "job-7")

	err := ClientRequestIDInterceptor()(ctx, "/x/Y", nil, nil, nil,
		func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			md, _ := metadata.FromOutgoingContext(ctx)
			if got := md.Get(RequestIDHeader); len(got) != 1 || got[0] != "job-7" {
				t.Errorf("Expected outgoing request ID job-7, got %v", got)
			}
			return nil
		})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestServer_Health(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Logger = mdwlog.Discard()
	srv := NewServer(cfg)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	defer srv.Stop()

	clientCfg := DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = mdwlog.Discard()
	conn, err := Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Expected SERVING, got %v", resp.GetStatus())
	}

	srv.SetServingStatus("fnc.v1.ParseService", false)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "fnc.v1.ParseService"})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Expected NOT_SERVING, got %v", resp.GetStatus())
	}
}

func TestServer_Address(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Logger = mdwlog.Discard()
	srv := NewServer(cfg)

	if got := srv.Address(); got != "127.0.0.1:9310" {
		t.Errorf("Expected configured address, got %s", got)
	}
}

func TestDialWithTimeout_Unreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	addr := lis.Addr().String()
	lis.Close()

	if _, err := DialWithTimeout(addr, 200*time.Millisecond); err == nil {
		t.Error("Expected an error dialing a closed port")
	}
}
