package calculator

import "fmt"

// ConfigurationError signals invalid static input to the calculator: an
// empty relation at construction, an empty lhs/rhs index set, or an
// index out of range.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Msg)
}

// LogicError signals an internal invariant violation — e.g. a probing
// table inconsistent with its clusters. These indicate a bug in this
// package, not bad input, and are not expected to surface in practice.
type LogicError struct {
	Msg string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("logic error: %s", e.Msg)
}

// NumericDomainError would signal a division/log domain violation in the
// tau/mu-plus/FI formulas. It is not expected to occur in practice: the
// shortcuts in tau.go/mu_plus.go/fi.go guard every such division, so
// this type exists to complete the taxonomy rather than because any
// code path constructs one.
type NumericDomainError struct {
	Msg string
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("numeric domain error: %s", e.Msg)
}
