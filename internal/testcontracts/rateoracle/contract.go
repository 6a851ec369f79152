// Package rateoracle provides a settable exchange rate oracle used in
// place of a production rate feed in tests.
package rateoracle

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const rateKey = "nativePerCent"

// DefaultNativePerCent is the conversion rate stored on deploy,
// in native units per fiat cent.
const DefaultNativePerCent = 1_0000

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}
	storage.Put(storage.GetContext(), rateKey, DefaultNativePerCent)
}

// SetRate overrides the conversion rate.
func SetRate(nativePerCent int) {
	if nativePerCent <= 0 {
		panic("rate must be positive")
	}
	storage.Put(storage.GetContext(), rateKey, nativePerCent)
}

// FiatCentsToNative converts a fiat amount in cents into native units at
// the current rate.
func FiatCentsToNative(cents int) int {
	rate := storage.Get(storage.GetReadOnlyContext(), rateKey).(int)
	return cents * rate
}
