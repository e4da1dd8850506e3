package mocks

import (
	"context"
	"hotel/infras/otel"
)

// otelStub records nothing; services under test only need a Scope to end.
type otelStub struct{}

func (o *otelStub) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelStub) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelStub{}
}

type scopeStub struct {
	errs []error
}

func (s *scopeStub) End() {}

func (s *scopeStub) TraceError(err error) {
	s.errs = append(s.errs, err)
}

func (s *scopeStub) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeStub) AddEvent(_ string) {}

func (s *scopeStub) SetAttribute(_ string, _ any) {}

func (s *scopeStub) SetAttributes(_ map[string]any) {}

func NewScope() otel.Scope {
	return &scopeStub{}
}
