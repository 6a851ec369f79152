package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	escrowPrefix     = []byte{0x01}
	settlementPrefix = []byte{0x02}
)

// SelfTransferMarker is passed as the data argument of GAS transfers
// initiated by the contracts themselves. The deposit callback recognizes
// it and does not account such transfers as operator deposits.
const SelfTransferMarker = "\x73\x74"

// EscrowTransferDetails marks an internal transfer as funds leaving a job's
// escrow for the claim holding pool.
func EscrowTransferDetails(jobID []byte) []byte {
	return append(escrowPrefix, jobID...)
}

// SettlementTransferDetails marks an internal transfer as a settled invoice
// payout.
func SettlementTransferDetails(jobID []byte) []byte {
	return append(settlementPrefix, jobID...)
}

// AbortWithMessage calls `runtime.Log` with the passed message
// and calls the `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
