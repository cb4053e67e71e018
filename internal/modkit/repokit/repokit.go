// Package repokit is the surface services use to talk to repos
// without importing the store backends directly
package repokit

import "cgeo/internal/platform/store"

type (
	// Queryer runs SQL on a pool or inside a transaction
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that opens transactions
	TxRunner = store.TxRunner

	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to one Queryer, usually the tx of the current call
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
