package domain

import "fmt"

// guard chains argument checks for value-object constructors and keeps the
// first failure. Later checks are skipped once one has failed.
type guard struct {
	err *DomainError
}

func ensure() *guard {
	return &guard{}
}

func (g *guard) that(ok bool, field, format string, args ...any) *guard {
	if g.err == nil && !ok {
		g.err = NewInvalidArgumentError(field, fmt.Sprintf(format, args...))
	}
	return g
}

func (g *guard) result() error {
	if g.err == nil {
		return nil
	}
	return g.err
}
