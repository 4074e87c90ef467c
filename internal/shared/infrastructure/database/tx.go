package database

import (
	"context"
	"errors"
	"sync"
)

// ErrNoTransaction is returned by Commit and Rollback outside of Begin.
var ErrNoTransaction = errors.New("no transaction in context")

type txKey struct{}

type txInfo struct {
	tx    Transaction
	owned bool
	hooks *commitHooks
}

// commitHooks is shared by the outer unit and every unit joined to it.
type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

func (h *commitHooks) add(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (h *commitHooks) discard() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = nil
}

func withTx(ctx context.Context, tx Transaction, owned bool, hooks *commitHooks) context.Context {
	return context.WithValue(ctx, txKey{}, txInfo{tx: tx, owned: owned, hooks: hooks})
}

func txFromContext(ctx context.Context) (txInfo, bool) {
	info, ok := ctx.Value(txKey{}).(txInfo)
	if !ok || info.tx == nil {
		return txInfo{}, false
	}
	return info, true
}

// ExecutorFromContext returns the transaction bound to ctx, or conn.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if info, ok := txFromContext(ctx); ok {
		return info.tx
	}
	return conn
}

// InTransaction reports whether ctx carries a unit-of-work transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok
}

// AfterCommit runs fn once the transaction bound to ctx has committed, in
// registration order. Outside a transaction fn runs immediately; on rollback
// it never runs.
func AfterCommit(ctx context.Context, fn func()) {
	info, ok := txFromContext(ctx)
	if !ok || info.hooks == nil {
		fn()
		return
	}
	info.hooks.add(fn)
}

// UnitOfWork binds one transaction per context. Nested Begin calls join the
// outer transaction and only the outermost unit commits.
type UnitOfWork struct {
	conn Connection
}

// NewUnitOfWork creates a unit of work over conn.
func NewUnitOfWork(conn Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := txFromContext(ctx); ok {
		return withTx(ctx, info.tx, false, info.hooks), nil
	}
	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return withTx(ctx, tx, true, &commitHooks{}), nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	info, ok := txFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	if err := info.tx.Commit(ctx); err != nil {
		info.hooks.discard()
		return err
	}
	info.hooks.run()
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	info, ok := txFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	info.hooks.discard()
	return info.tx.Rollback(ctx)
}
