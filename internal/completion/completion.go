package completion

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("completion returned no content")

// Request is a single system plus user exchange.
type Request struct {
	System string
	User   string
}

//go:generate go run go.uber.org/mock/mockgen -source=completion.go -destination=mocks/mock.go
type Client interface {
	// Complete returns the raw text of the first choice.
	Complete(ctx context.Context, req Request) (string, error)
}
