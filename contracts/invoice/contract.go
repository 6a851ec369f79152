package invoice

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/invoice/invoiceconst"
)

// Invoice is a payment request of a node against a render job, settled by
// the explicit verdict of the job owner. Unlike claim invoices of the
// RenderJob contract, these carry no time lock: funds move only on
// acceptance.
type Invoice struct {
	// Content identifier of the invoice document.
	CID []byte
	// Content identifier of the invoiced render job.
	Job []byte
	// Invoicing node account.
	Node interop.Hash160
	// Declared work units.
	Work int
	// Requested cost, native units.
	Cost int
	// One of the invoiceconst state values.
	State int
	// Decline reason, set only in the declined state.
	Reason int
	// CID of the declined invoice this one re-renders, if any.
	Prev []byte
	// CID of the re-render successor, set on the declined invoice.
	Next []byte
	// Request timestamp, ms.
	Created int
}

// jobRecord mirrors the job structure returned by the render job contract.
type jobRecord struct {
	CID           []byte
	Owner         interop.Hash160
	Escrow        int
	EstimatedWork int
	EstimatedCost int
	Submitted     int
	InvoicedWork  int
	InvoicedCost  int
	Held          int
	Archived      bool
}

const (
	invoicePrefix = 'i'

	registryContractKey  = "registryScriptHash"
	renderJobContractKey = "renderJobScriptHash"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		registry  interop.Hash160
		renderJob interop.Hash160
	})

	if len(args.registry) != interop.Hash160Len {
		panic("incorrect registry script hash")
	}
	if len(args.renderJob) != interop.Hash160Len {
		panic("incorrect render job script hash")
	}

	storage.Put(ctx, registryContractKey, args.registry)
	storage.Put(ctx, renderJobContractKey, args.renderJob)

	runtime.Log("invoice contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("invoice contract updated")
}

// RequestInvoice submits a payment request of the node against the job.
// The node must hold the currently required stake and the job must exist
// and not be archived. With prev set, the request is a re-render of an
// invoice declined for an invalid render result; a declined invoice can be
// re-rendered at most once and the link is recorded on both sides.
//
// It produces InvoiceRequested notification.
func RequestInvoice(node interop.Hash160, cid, jobCID []byte, work, cost int, prev []byte) {
	common.CheckOwnerWitness(node)

	if work <= 0 || cost <= 0 {
		panic(invoiceconst.ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()

	staked := contract.Call(registryContract(ctx), "isStakedNode",
		contract.ReadOnly, node).(bool)
	if !staked {
		panic(invoiceconst.ErrNotStaked)
	}

	if storage.Get(ctx, invoiceKey(cid)) != nil {
		panic(invoiceconst.ErrInvoiceExists)
	}

	// Existence and archival checks live in the render job contract.
	contract.Call(renderJobContract(ctx), "getJob", contract.ReadOnly, jobCID)

	if len(prev) != 0 {
		prevInv := mustGetInvoice(ctx, prev)
		if prevInv.State != invoiceconst.StateDeclined ||
			prevInv.Reason != invoiceconst.ReasonInvalidRenderResult {
			panic(invoiceconst.ErrNotDeclinedResult)
		}
		if len(prevInv.Next) != 0 {
			panic(invoiceconst.ErrRerenderExists)
		}

		prevInv.Next = cid
		common.SetSerialized(ctx, invoiceKey(prev), prevInv)
	}

	common.SetSerialized(ctx, invoiceKey(cid), Invoice{
		CID:     cid,
		Job:     jobCID,
		Node:    node,
		Work:    work,
		Cost:    cost,
		State:   invoiceconst.StateRequested,
		Prev:    prev,
		Created: runtime.GetTime(),
	})

	runtime.Log("invoice requested")
	runtime.Notify("InvoiceRequested", node, cid, jobCID, cost)
}

// AcceptInvoices settles a batch of requested invoices of the owner's
// jobs. Each accepted invoice is paid out of the job escrow into the
// invoicing node's operator balance through the render job contract. The
// batch never fails as a whole: the returned slice carries a result code
// per input CID, in order, and failed items are left untouched.
//
// It produces InvoiceAccepted notification per settled invoice.
func AcceptInvoices(owner interop.Hash160, cids [][]byte) []int {
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	renderJob := renderJobContract(ctx)
	registry := registryContract(ctx)

	result := []int{}
	for i := 0; i < len(cids); i++ {
		cid := cids[i]

		inv, ok := getInvoice(ctx, cid)
		if !ok {
			result = append(result, invoiceconst.CodeUnknownInvoice)
			continue
		}

		owned := contract.Call(renderJob, "isJobOwner",
			contract.ReadOnly, owner, inv.Job).(bool)
		if !owned {
			result = append(result, invoiceconst.CodeUnknownJob)
			continue
		}

		if inv.State != invoiceconst.StateRequested {
			result = append(result, invoiceconst.CodeAlreadySettled)
			continue
		}

		job := contract.Call(renderJob, "getJob", contract.ReadOnly,
			inv.Job).(jobRecord)
		if job.Escrow < inv.Cost {
			result = append(result, invoiceconst.CodeInsufficientEscrow)
			continue
		}

		payee := contract.Call(registry, "nodeOperator",
			contract.ReadOnly, inv.Node).(interop.Hash160)

		contract.Call(renderJob, "settleLegacyInvoice", contract.All,
			inv.Job, payee, inv.Cost)

		if len(inv.Prev) != 0 {
			inv.State = invoiceconst.StateAcceptedAfterRerender
		} else {
			inv.State = invoiceconst.StateAccepted
		}
		common.SetSerialized(ctx, invoiceKey(cid), inv)

		result = append(result, invoiceconst.SettleOK)
		runtime.Notify("InvoiceAccepted", owner, cid, inv.Node, inv.Cost)
	}

	return result
}

// DeclineInvoices rejects a batch of requested invoices of the owner's
// jobs, one reason per CID. Like acceptance, the batch reports a result
// code per item and never fails as a whole. A decline moves no funds; an
// invoice declined for an invalid render result can be re-rendered once
// through RequestInvoice.
//
// It produces InvoiceDeclined notification per declined invoice.
func DeclineInvoices(owner interop.Hash160, cids [][]byte, reasons []int) []int {
	common.CheckOwnerWitness(owner)

	if len(cids) != len(reasons) {
		panic(invoiceconst.ErrBatchMismatch)
	}

	ctx := storage.GetContext()
	renderJob := renderJobContract(ctx)

	result := []int{}
	for i := 0; i < len(cids); i++ {
		cid := cids[i]

		inv, ok := getInvoice(ctx, cid)
		if !ok {
			result = append(result, invoiceconst.CodeUnknownInvoice)
			continue
		}

		owned := contract.Call(renderJob, "isJobOwner",
			contract.ReadOnly, owner, inv.Job).(bool)
		if !owned {
			result = append(result, invoiceconst.CodeUnknownJob)
			continue
		}

		if inv.State != invoiceconst.StateRequested {
			result = append(result, invoiceconst.CodeAlreadySettled)
			continue
		}

		reason := reasons[i]
		if reason < invoiceconst.ReasonInvalidNode ||
			reason > invoiceconst.ReasonInvalidRenderResult {
			result = append(result, invoiceconst.CodeBadReason)
			continue
		}

		inv.State = invoiceconst.StateDeclined
		inv.Reason = reason
		common.SetSerialized(ctx, invoiceKey(cid), inv)

		result = append(result, invoiceconst.SettleOK)
		runtime.Notify("InvoiceDeclined", owner, cid, inv.Node, reason)
	}

	return result
}

// GetInvoice returns the invoice record by its CID.
func GetInvoice(cid []byte) Invoice {
	ctx := storage.GetReadOnlyContext()
	return mustGetInvoice(ctx, cid)
}

// StateOf returns the invoice state as one of the invoiceconst state
// values.
func StateOf(cid []byte) int {
	ctx := storage.GetReadOnlyContext()
	return mustGetInvoice(ctx, cid).State
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func invoiceKey(cid []byte) []byte {
	return append([]byte{invoicePrefix}, crypto.Sha256(cid)...)
}

func getInvoice(ctx storage.Context, cid []byte) (Invoice, bool) {
	data := storage.Get(ctx, invoiceKey(cid))
	if data == nil {
		return Invoice{}, false
	}

	return std.Deserialize(data.([]byte)).(Invoice), true
}

func mustGetInvoice(ctx storage.Context, cid []byte) Invoice {
	inv, ok := getInvoice(ctx, cid)
	if !ok {
		panic(invoiceconst.ErrUnknownInvoice)
	}

	return inv
}

func registryContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, registryContractKey).(interop.Hash160)
}

func renderJobContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, renderJobContractKey).(interop.Hash160)
}
