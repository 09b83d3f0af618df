package endpoints

type Request interface {
	validate() error
}

// AddRequest collects the request parameters for the Add method.
type AddRequest struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Operands are already integers by the time a request is built, every
// pair is valid.
func (r AddRequest) validate() error {
	return nil
}
