package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/invoice/invoiceconst"
	"github.com/hivemesh/hivemesh-contract/contracts/renderjob/renderjobconst"
	"github.com/stretchr/testify/require"
)

// legacyFixture is a marketplace with one funded job of the owner and one
// staked node of a second operator, the minimum to move legacy invoices
// around.
type legacyFixture struct {
	m             *marketplace
	owner, nodeOp neotest.Signer
	node          neotest.Signer
	cid           []byte
}

func newLegacyFixture(t *testing.T) *legacyFixture {
	m := newMarketplace(t)

	f := &legacyFixture{
		m:      m,
		owner:  m.exec.NewAccount(t),
		nodeOp: m.exec.NewAccount(t),
		node:   m.exec.NewAccount(t),
		cid:    randomCID(),
	}

	m.registerOperator(t, f.owner, 5_0000_0000)
	m.registerOperator(t, f.nodeOp, 0)
	m.addNode(t, f.nodeOp, f.node)
	m.addJob(t, f.owner, f.cid, 3_0000_0000, 100, 3_0000_0000)

	return f
}

func (f *legacyFixture) request(t *testing.T, invCID []byte, cost int64) {
	f.m.invoice.WithSigners(f.node).Invoke(t, stackitem.Null{}, "requestInvoice",
		f.node.ScriptHash(), invCID, f.cid, int64(50), cost, []byte{})
}

func batchResult(codes ...int64) stackitem.Item {
	items := make([]stackitem.Item, len(codes))
	for i := range codes {
		items[i] = stackitem.Make(codes[i])
	}
	return stackitem.NewArray(items)
}

func TestInvoiceRequest(t *testing.T) {
	f := newLegacyFixture(t)
	m := f.m

	invCID := randomCID()
	cNode := m.invoice.WithSigners(f.node)

	t.Run("unstaked account", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.invoice.WithSigners(stranger).InvokeFail(t, invoiceconst.ErrNotStaked,
			"requestInvoice", stranger.ScriptHash(), invCID, f.cid, int64(50), int64(1000), []byte{})
	})

	cNode.InvokeFail(t, invoiceconst.ErrNonPositiveAmount, "requestInvoice",
		f.node.ScriptHash(), invCID, f.cid, int64(50), int64(0), []byte{})
	cNode.InvokeFail(t, renderjobconst.ErrUnknownJob, "requestInvoice",
		f.node.ScriptHash(), invCID, randomCID(), int64(50), int64(1000), []byte{})

	h := cNode.Invoke(t, stackitem.Null{}, "requestInvoice",
		f.node.ScriptHash(), invCID, f.cid, int64(50), int64(1000), []byte{})
	aer := cNode.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "InvoiceRequested", aer.Events[0].Name)

	m.invoice.Invoke(t, int64(invoiceconst.StateRequested), "stateOf", invCID)

	s, err := m.invoice.TestInvoke(t, "getInvoice", invCID)
	require.NoError(t, err)
	inv := s.Pop().Array()
	gotCID, err := inv[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, invCID, gotCID)
	gotJob, err := inv[1].TryBytes()
	require.NoError(t, err)
	require.Equal(t, f.cid, gotJob)
	gotNode, err := inv[2].TryBytes()
	require.NoError(t, err)
	require.Equal(t, f.node.ScriptHash().BytesBE(), gotNode)

	cNode.InvokeFail(t, invoiceconst.ErrInvoiceExists, "requestInvoice",
		f.node.ScriptHash(), invCID, f.cid, int64(50), int64(1000), []byte{})

	m.invoice.InvokeFail(t, invoiceconst.ErrUnknownInvoice, "getInvoice", randomCID())
	m.invoice.InvokeFail(t, invoiceconst.ErrUnknownInvoice, "stateOf", randomCID())
}

func TestInvoiceAcceptBatch(t *testing.T) {
	f := newLegacyFixture(t)
	m := f.m

	inv1 := randomCID()
	invOverEscrow := randomCID()
	f.request(t, inv1, 1_0000_0000)
	f.request(t, invOverEscrow, 5_0000_0000)

	// an invoice against a job of somebody else
	other := m.exec.NewAccount(t)
	m.registerOperator(t, other, 5_0000_0000)
	otherCID := randomCID()
	m.addJob(t, other, otherCID, 1_0000_0000, 100, 1_0000_0000)
	invForeign := randomCID()
	m.invoice.WithSigners(f.node).Invoke(t, stackitem.Null{}, "requestInvoice",
		f.node.ScriptHash(), invForeign, otherCID, int64(50), int64(1000), []byte{})

	cOwner := m.invoice.WithSigners(f.owner)

	m.invoice.InvokeFail(t, common.ErrOwnerWitnessFailed, "acceptInvoices",
		f.owner.ScriptHash(), []interface{}{inv1})

	h := cOwner.Invoke(t, batchResult(
		int64(invoiceconst.SettleOK),
		int64(invoiceconst.CodeUnknownInvoice),
		int64(invoiceconst.CodeUnknownJob),
		int64(invoiceconst.CodeInsufficientEscrow),
	), "acceptInvoices", f.owner.ScriptHash(), []interface{}{
		inv1, randomCID(), invForeign, invOverEscrow,
	})
	aer := cOwner.CheckHalt(t, h)
	names := make([]string, 0, len(aer.Events))
	for _, ev := range aer.Events {
		names = append(names, ev.Name)
	}
	require.Contains(t, names, "InvoiceAccepted")

	m.invoice.Invoke(t, int64(invoiceconst.StateAccepted), "stateOf", inv1)
	m.registry.Invoke(t, int64(1_0000_0000), "balanceOf", f.nodeOp.ScriptHash())
	m.registry.Invoke(t, int64(4_0000_0000), "balanceOf", f.owner.ScriptHash())
	m.renderJob.Invoke(t, int64(2_0000_0000), "reservedOf", f.owner.ScriptHash())

	// settled invoices are left untouched on a second pass
	cOwner.Invoke(t, batchResult(int64(invoiceconst.CodeAlreadySettled)),
		"acceptInvoices", f.owner.ScriptHash(), []interface{}{inv1})
}

func TestInvoiceDeclineBatch(t *testing.T) {
	f := newLegacyFixture(t)
	m := f.m

	inv1 := randomCID()
	inv2 := randomCID()
	f.request(t, inv1, 1_0000_0000)
	f.request(t, inv2, 1_0000_0000)

	cOwner := m.invoice.WithSigners(f.owner)

	cOwner.InvokeFail(t, invoiceconst.ErrBatchMismatch, "declineInvoices",
		f.owner.ScriptHash(), []interface{}{inv1, inv2}, []interface{}{int64(1)})

	cOwner.Invoke(t, batchResult(
		int64(invoiceconst.CodeBadReason),
		int64(invoiceconst.SettleOK),
	), "declineInvoices", f.owner.ScriptHash(),
		[]interface{}{inv1, inv2},
		[]interface{}{int64(0), int64(invoiceconst.ReasonInvalidWork)})

	m.invoice.Invoke(t, int64(invoiceconst.StateRequested), "stateOf", inv1)
	m.invoice.Invoke(t, int64(invoiceconst.StateDeclined), "stateOf", inv2)

	s, err := m.invoice.TestInvoke(t, "getInvoice", inv2)
	require.NoError(t, err)
	reason, err := s.Pop().Array()[6].TryInteger()
	require.NoError(t, err)
	require.Equal(t, int64(invoiceconst.ReasonInvalidWork), reason.Int64())

	// a declined invoice can be neither settled nor re-declined
	cOwner.Invoke(t, batchResult(int64(invoiceconst.CodeAlreadySettled)),
		"acceptInvoices", f.owner.ScriptHash(), []interface{}{inv2})
	cOwner.Invoke(t, batchResult(int64(invoiceconst.CodeAlreadySettled)),
		"declineInvoices", f.owner.ScriptHash(), []interface{}{inv2},
		[]interface{}{int64(invoiceconst.ReasonInvalidCosts)})

	// declining moves no funds
	m.registry.Invoke(t, int64(0), "balanceOf", f.nodeOp.ScriptHash())
}

func TestInvoiceRerender(t *testing.T) {
	f := newLegacyFixture(t)
	m := f.m

	inv1 := randomCID()
	f.request(t, inv1, 1_0000_0000)

	cNode := m.invoice.WithSigners(f.node)
	cOwner := m.invoice.WithSigners(f.owner)

	rerender := randomCID()
	cNode.InvokeFail(t, invoiceconst.ErrNotDeclinedResult, "requestInvoice",
		f.node.ScriptHash(), rerender, f.cid, int64(50), int64(1_0000_0000), inv1)

	// only the invalid render result verdict opens the re-render path
	cOwner.Invoke(t, batchResult(int64(invoiceconst.SettleOK)), "declineInvoices",
		f.owner.ScriptHash(), []interface{}{inv1},
		[]interface{}{int64(invoiceconst.ReasonInvalidCosts)})
	cNode.InvokeFail(t, invoiceconst.ErrNotDeclinedResult, "requestInvoice",
		f.node.ScriptHash(), rerender, f.cid, int64(50), int64(1_0000_0000), inv1)

	inv2 := randomCID()
	f.request(t, inv2, 1_0000_0000)
	cOwner.Invoke(t, batchResult(int64(invoiceconst.SettleOK)), "declineInvoices",
		f.owner.ScriptHash(), []interface{}{inv2},
		[]interface{}{int64(invoiceconst.ReasonInvalidRenderResult)})

	cNode.Invoke(t, stackitem.Null{}, "requestInvoice",
		f.node.ScriptHash(), rerender, f.cid, int64(50), int64(1_0000_0000), inv2)

	// the link is recorded on the declined side
	s, err := m.invoice.TestInvoke(t, "getInvoice", inv2)
	require.NoError(t, err)
	next, err := s.Pop().Array()[8].TryBytes()
	require.NoError(t, err)
	require.Equal(t, rerender, next)

	// one re-render per declined invoice
	cNode.InvokeFail(t, invoiceconst.ErrRerenderExists, "requestInvoice",
		f.node.ScriptHash(), randomCID(), f.cid, int64(50), int64(1_0000_0000), inv2)

	cOwner.Invoke(t, batchResult(int64(invoiceconst.SettleOK)), "acceptInvoices",
		f.owner.ScriptHash(), []interface{}{rerender})
	m.invoice.Invoke(t, int64(invoiceconst.StateAcceptedAfterRerender), "stateOf", rerender)
	m.registry.Invoke(t, int64(1_0000_0000), "balanceOf", f.nodeOp.ScriptHash())
}
