package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrUnknownAction = fmt.Errorf("unknown envelope action")
)
