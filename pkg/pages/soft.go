package pages

import "fmt"

// Soft is the result of a best-effort check. The value is always the last
// one read; OK is false when the expected condition was not met in time, with
// Err holding the reason. Callers decide whether to assert or tolerate.
type Soft[T any] struct {
	Value T
	OK    bool
	Err   error
}

func softOK[T any](v T) Soft[T] {
	return Soft[T]{Value: v, OK: true}
}

func softFail[T any](v T, err error) Soft[T] {
	return Soft[T]{Value: v, Err: err}
}

// Result returns the value and, when the check failed, its error.
func (s Soft[T]) Result() (T, error) {
	if s.OK {
		return s.Value, nil
	}
	if s.Err == nil {
		return s.Value, fmt.Errorf("soft check failed")
	}
	return s.Value, s.Err
}

// Must returns the value and panics when the check failed.
func (s Soft[T]) Must() T {
	v, err := s.Result()
	if err != nil {
		panic(err)
	}
	return v
}
