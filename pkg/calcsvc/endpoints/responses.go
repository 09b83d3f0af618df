package endpoints

import (
	"net/http"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
)

var (
	_ httptransport.Headerer = (*AddResponse)(nil)

	_ httptransport.StatusCoder = (*AddResponse)(nil)

	_ endpoint.Failer = AddResponse{}
)

// AddResponse collects the response values for the Add method.
type AddResponse struct {
	Rs  int64 `json:"rs"`
	Err error `json:"-"`
}

func (r AddResponse) StatusCode() int {
	return http.StatusOK
}

func (r AddResponse) Headers() http.Header {
	return http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}}
}

// Failed implements endpoint.Failer.
func (r AddResponse) Failed() error {
	return r.Err
}
