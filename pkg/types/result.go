package types

// ResultKind separates an empty read from a failed one.
type ResultKind string

const (
	ResultOK          ResultKind = "ok"
	ResultEmpty       ResultKind = "empty"
	ResultUnavailable ResultKind = "unavailable"
)

// Result carries read results without collapsing "no data" and "store failed" into one value.
type Result[T any] struct {
	Kind ResultKind `json:"kind"`
	Data T          `json:"data"`
	Err  error      `json:"-"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Kind: ResultOK, Data: data}
}

func Empty[T any]() Result[T] {
	return Result[T]{Kind: ResultEmpty}
}

func Unavailable[T any](err error) Result[T] {
	return Result[T]{Kind: ResultUnavailable, Err: err}
}

func (r Result[T]) Available() bool {
	return r.Kind != ResultUnavailable
}
