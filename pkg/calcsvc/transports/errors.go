package transports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-kit/kit/ratelimit"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/operands"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

// encodingError wraps a failure to parse the url-encoded part of a request,
// either the query string or a form body.
type encodingError struct {
	part string
	err  error
}

func (e *encodingError) Error() string { return "malformed " + e.part + ": " + e.err.Error() }

func (e *encodingError) Unwrap() error { return e.err }

func httpEncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpStatusFromError(err))
	json.NewEncoder(w).Encode(errorWrapper{Error: errorMessage(err)})
}

func httpStatusFromError(err error) int {
	var (
		parseErr *operands.ParseError
		bodyErr  *operands.MalformedBodyError
		encErr   *encodingError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &bodyErr), errors.As(err, &encErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrOverflow):
		return http.StatusBadRequest
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest
	case errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	}
	if st, ok := status.FromError(err); ok {
		return HTTPStatusFromCode(st.Code())
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}

// decodeServiceError restores the service errors a remote instance reports
// by message.
func decodeServiceError(msg string) error {
	if msg == service.ErrOverflow.Error() {
		return service.ErrOverflow
	}
	return errors.New(msg)
}

func grpcEncodeError(err error) error {
	if err == nil {
		return nil
	}

	if st, ok := status.FromError(err); ok {
		return status.Error(st.Code(), st.Message())
	}
	switch {
	case errors.Is(err, service.ErrOverflow):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ratelimit.ErrLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func grpcDecodeError(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.InvalidArgument {
		return err
	}
	return decodeServiceError(st.Message())
}

// HTTPStatusFromCode converts a gRPC error code into the corresponding HTTP response status.
// See: https://github.com/googleapis/googleapis/blob/master/google/rpc/code.proto
func HTTPStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.Canceled:
		return http.StatusRequestTimeout
	case codes.Unknown:
		return http.StatusInternalServerError
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.Aborted:
		return http.StatusConflict
	case codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Internal:
		return http.StatusInternalServerError
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DataLoss:
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
