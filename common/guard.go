package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// ErrReentrancy is thrown when a guarded account is entered twice within
// one invocation chain.
const ErrReentrancy = "account operation already in progress"

const guardPrefix = 'g'

// AcquireGuard marks the account as having a fund-moving operation in
// progress. Any nested attempt to acquire the same guard panics, which
// aborts the whole transaction. The marker survives only within the
// invocation chain: a faulted transaction discards it together with the
// rest of its writes.
func AcquireGuard(ctx storage.Context, acc interop.Hash160) {
	key := append([]byte{guardPrefix}, acc...)
	if storage.Get(ctx, key) != nil {
		panic(ErrReentrancy)
	}
	storage.Put(ctx, key, []byte{1})
}

// ReleaseGuard clears the in-progress marker set by AcquireGuard. It must
// be called on every successful exit path of a guarded operation.
func ReleaseGuard(ctx storage.Context, acc interop.Hash160) {
	storage.Delete(ctx, append([]byte{guardPrefix}, acc...))
}
