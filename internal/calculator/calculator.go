// Package calculator implements the AFD metric calculator: G2, tau,
// mu-plus, and FI, computed over a relation's Position List Indices.
// Every exported method is a pure function of its arguments and the
// calculator's (immutable) relation.
package calculator

import (
	"github.com/relmetrics/afdmetric/internal/indexset"
	"github.com/relmetrics/afdmetric/internal/pli"
	"github.com/relmetrics/afdmetric/internal/relation"
)

// Calculator holds a shared, read-only handle to a Relation. It has two
// observable states: constructed-and-ready, or it never exists at all —
// New/NewFromTable return a ConfigurationError instead of a calculator
// when the relation is empty, a terminal failed state raised entirely
// at construction.
type Calculator struct {
	relation *relation.Relation
}

// New builds a Calculator over an already-constructed Relation.
func New(rel *relation.Relation) (*Calculator, error) {
	if rel == nil || rel.NumRows() == 0 {
		return nil, &ConfigurationError{Msg: "empty dataset: AFD metric calculation is meaningless"}
	}
	return &Calculator{relation: rel}, nil
}

// NewFromTable builds a Calculator directly from columnar cell data,
// constructing the underlying Relation with the given null-equality
// semantics.
func NewFromTable(columns [][]string, nullsAreEqual bool) (*Calculator, error) {
	rel, err := relation.New(columns, nullsAreEqual)
	if err != nil {
		return nil, &ConfigurationError{Msg: err.Error()}
	}
	return New(rel)
}

// plis resolves the LHS and RHS index sets against the calculator's
// relation, validating both and returning their PLIs plus the shared
// row count. Every CalculateXxx method funnels through this so the
// preconditions (lhs/rhs non-empty, indices in range, N > 0) are
// enforced exactly once.
func (c *Calculator) plis(lhs, rhs []int) (x, y *pli.PLI, numRows int, err error) {
	numColumns := c.relation.NumColumns()

	lhsSet, err := indexset.New(lhs, numColumns)
	if err != nil {
		return nil, nil, 0, &ConfigurationError{Msg: err.Error()}
	}
	rhsSet, err := indexset.New(rhs, numColumns)
	if err != nil {
		return nil, nil, 0, &ConfigurationError{Msg: err.Error()}
	}

	x, err = c.relation.PLI(lhsSet)
	if err != nil {
		return nil, nil, 0, &ConfigurationError{Msg: err.Error()}
	}
	y, err = c.relation.PLI(rhsSet)
	if err != nil {
		return nil, nil, 0, &ConfigurationError{Msg: err.Error()}
	}

	return x, y, c.relation.NumRows(), nil
}
