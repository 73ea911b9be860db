package lookup

// Status is the state of one independently fetched piece of data
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result is a tagged variant: Idle, Loading, Ready(value) or Failed(err).
// The zero value is Idle.
type Result[T any] struct {
	status Status
	value  T
	err    error
}

func Idle[T any]() Result[T] {
	return Result[T]{}
}

func Loading[T any]() Result[T] {
	return Result[T]{status: StatusLoading}
}

func Ready[T any](value T) Result[T] {
	return Result[T]{status: StatusReady, value: value}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{status: StatusFailed, err: err}
}

func (r Result[T]) Status() Status {
	return r.status
}

// Value returns the data and true only when the result is Ready
func (r Result[T]) Value() (T, bool) {
	if r.status != StatusReady {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err is non-nil only when the result is Failed
func (r Result[T]) Err() error {
	return r.err
}
