package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrDanglingReference = errors.New("dangling reference")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrInvalidDirection  = errors.New("invalid trace direction")
)

// UnknownEntityError is returned by queries whose target is not in the graph.
type UnknownEntityError struct {
	ID string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %q", e.ID)
}

func (e *UnknownEntityError) Is(target error) bool { return target == ErrUnknownEntity }

// DanglingReferenceError is returned by a strict build when a relation names
// a batch that is not part of the dataset.
type DanglingReferenceError struct {
	From string
	To   string
	Kind RelationKind
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling %s reference %q -> %q", e.Kind, e.From, e.To)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// CycleDetectedWarning marks a strongly connected group of entities. Genealogy
// graphs should be acyclic, so this is a data quality signal, not a failure.
type CycleDetectedWarning struct {
	Nodes []string `json:"nodes"`
}

func (w *CycleDetectedWarning) Error() string {
	return "cycle detected: " + strings.Join(w.Nodes, " -> ")
}

// ValidationError lists every problem found in a dataset.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid dataset: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidDataset }
