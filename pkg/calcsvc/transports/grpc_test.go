package transports

import (
	"context"
	"math"
	"net"
	"testing"

	"github.com/go-kit/kit/log"
	kitgrpc "github.com/go-kit/kit/transport/grpc"
	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	rpb "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/cage1016/gokitcalc/pb/calcsvc"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

func dialTestGRPCServer(t *testing.T) *grpc.ClientConn {
	otTracer, zipkinTracer := newTestTracers(t)

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(kitgrpc.Interceptor))
	pb.RegisterCalcsvcServer(server, MakeGRPCServer(newTestEndpoints(t), otTracer, zipkinTracer, log.NewNopLogger()))
	reflection.Register(server)
	go server.Serve(listener)
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGRPCServer(t *testing.T) {
	client := pb.NewCalcsvcClient(dialTestGRPCServer(t))

	reply, err := client.Add(context.Background(), &pb.AddRequest{X: 3, Y: 4})
	require.NoError(t, err)
	require.Equal(t, int64(7), reply.GetRs())

	_, err = client.Add(context.Background(), &pb.AddRequest{X: math.MaxInt64, Y: 1})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCClient(t *testing.T) {
	otTracer, zipkinTracer := newTestTracers(t)
	svc := NewGRPCClient(dialTestGRPCServer(t), otTracer, zipkinTracer, log.NewNopLogger())

	rs, err := svc.Add(context.Background(), 10, -3)
	require.NoError(t, err)
	require.Equal(t, int64(7), rs)

	_, err = svc.Add(context.Background(), math.MinInt64, -1)
	require.Equal(t, service.ErrOverflow, err)
}

func TestGRPCReflectionResolvesService(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := rpb.NewServerReflectionClient(dialTestGRPCServer(t)).ServerReflectionInfo(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: "pb.Calcsvc"},
	}))

	resp, err := stream.Recv()
	require.NoError(t, err)
	require.Nil(t, resp.GetErrorResponse())
	files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
	require.NotEmpty(t, files)

	var fd descriptor.FileDescriptorProto
	require.NoError(t, proto.Unmarshal(files[0], &fd))
	assert.Equal(t, "calcsvc.proto", fd.GetName())
	require.Len(t, fd.GetService(), 1)
	require.Len(t, fd.GetService()[0].GetMethod(), 1)
	method := fd.GetService()[0].GetMethod()[0]
	assert.Equal(t, "Add", method.GetName())
	assert.Equal(t, ".pb.AddRequest", method.GetInputType())
	assert.Equal(t, ".pb.AddReply", method.GetOutputType())
}
