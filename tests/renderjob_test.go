package tests

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/renderjob/renderjobconst"
	"github.com/stretchr/testify/require"
)

func TestRenderJobAddJob(t *testing.T) {
	m := newMarketplace(t)

	owner := m.exec.NewAccount(t)
	m.registerOperator(t, owner, 0)
	cOwner := m.renderJob.WithSigners(owner)

	cid := randomCID()

	m.renderJob.InvokeFail(t, common.ErrOwnerWitnessFailed, "addJob",
		owner.ScriptHash(), cid, int64(1_0000_0000), int64(100), int64(1_0000_0000))
	cOwner.InvokeFail(t, renderjobconst.ErrNonPositiveAmount, "addJob",
		owner.ScriptHash(), cid, int64(0), int64(100), int64(1_0000_0000))
	cOwner.InvokeFail(t, renderjobconst.ErrInsufficientEscrow, "addJob",
		owner.ScriptHash(), cid, int64(1_0000_0000), int64(100), int64(1_0000_0000))

	m.depositGAS(t, owner, 3_0000_0000)

	h := cOwner.Invoke(t, stackitem.Null{}, "addJob",
		owner.ScriptHash(), cid, int64(1_0000_0000), int64(100), int64(1_0000_0000))
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, "JobAdded", aer.Events[len(aer.Events)-1].Name)

	m.renderJob.Invoke(t, true, "isJobOwner", owner.ScriptHash(), cid)

	s, err := m.renderJob.TestInvoke(t, "jobsOf", owner.ScriptHash())
	require.NoError(t, err)
	jobs := s.Pop().Array()
	require.Len(t, jobs, 1)
	gotCID, err := jobs[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, cid, gotCID)
	m.renderJob.Invoke(t, int64(1), "activeJobsOf", owner.ScriptHash())
	m.renderJob.Invoke(t, int64(1_0000_0000), "reservedOf", owner.ScriptHash())
	m.registry.Invoke(t, int64(2_0000_0000), "freeBalance", owner.ScriptHash())

	cOwner.InvokeFail(t, renderjobconst.ErrJobExists, "addJob",
		owner.ScriptHash(), cid, int64(1_0000_0000), int64(100), int64(1_0000_0000))

	t.Run("escrow over free balance", func(t *testing.T) {
		cOwner.InvokeFail(t, renderjobconst.ErrInsufficientEscrow, "addJob",
			owner.ScriptHash(), randomCID(), int64(2_5000_0000), int64(100), int64(2_5000_0000))
	})
}

func TestRenderJobTopUpAndArchive(t *testing.T) {
	m := newMarketplace(t)

	owner := m.exec.NewAccount(t)
	m.registerOperator(t, owner, 3_0000_0000)
	cOwner := m.renderJob.WithSigners(owner)

	cid := randomCID()
	m.addJob(t, owner, cid, 1_0000_0000, 100, 1_0000_0000)

	t.Run("stranger", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.renderJob.WithSigners(stranger).InvokeFail(t, renderjobconst.ErrNotJobOwner,
			"topUpFunds", stranger.ScriptHash(), cid, int64(1))
		m.renderJob.WithSigners(stranger).InvokeFail(t, renderjobconst.ErrNotJobOwner,
			"archiveJob", stranger.ScriptHash(), cid)
	})

	cOwner.InvokeFail(t, renderjobconst.ErrInsufficientEscrow, "topUpFunds",
		owner.ScriptHash(), cid, int64(5_0000_0000))

	h := cOwner.Invoke(t, stackitem.Null{}, "topUpFunds", owner.ScriptHash(), cid, int64(5000_0000))
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, "JobFunded", aer.Events[len(aer.Events)-1].Name)
	m.renderJob.Invoke(t, int64(1_5000_0000), "reservedOf", owner.ScriptHash())

	h = cOwner.Invoke(t, stackitem.Null{}, "archiveJob", owner.ScriptHash(), cid)
	aer = cOwner.CheckHalt(t, h)
	require.Equal(t, "JobArchived", aer.Events[len(aer.Events)-1].Name)

	m.renderJob.Invoke(t, int64(0), "reservedOf", owner.ScriptHash())
	m.renderJob.Invoke(t, int64(0), "activeJobsOf", owner.ScriptHash())
	m.registry.Invoke(t, int64(3_0000_0000), "freeBalance", owner.ScriptHash())

	cOwner.InvokeFail(t, renderjobconst.ErrJobArchived, "archiveJob", owner.ScriptHash(), cid)
	cOwner.InvokeFail(t, renderjobconst.ErrJobArchived, "topUpFunds", owner.ScriptHash(), cid, int64(1))

	// the CID is burned forever
	cOwner.InvokeFail(t, renderjobconst.ErrJobExists, "addJob",
		owner.ScriptHash(), cid, int64(1_0000_0000), int64(100), int64(1_0000_0000))
}

func TestRenderJobClaim(t *testing.T) {
	m := newMarketplace(t)

	owner := m.exec.NewAccount(t)
	m.registerOperator(t, owner, 3_0000_0000)
	cid := randomCID()
	m.addJob(t, owner, cid, 2_0000_0000, 100, 2_0000_0000)

	nodeOp := m.exec.NewAccount(t)
	m.registerOperator(t, nodeOp, 0)
	nodes := make([]neotest.Signer, 4)
	for i := range nodes {
		nodes[i] = m.exec.NewAccount(t)
		m.addNode(t, nodeOp, nodes[i])
	}

	rootA := randomBytes(32)
	rootB := randomBytes(32)
	cycle := m.currentCycle(t)

	t.Run("unstaked account", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.renderJob.WithSigners(stranger).InvokeFail(t, renderjobconst.ErrNotStaked,
			"claimJob", stranger.ScriptHash(), cid, cycle, int64(4), int64(2500), rootA, rootA)
	})

	c0 := m.renderJob.WithSigners(nodes[0])
	c0.InvokeFail(t, renderjobconst.ErrWrongCycle, "claimJob",
		nodes[0].ScriptHash(), cid, cycle+1, int64(4), int64(2500), rootA, rootA)

	h := c0.Invoke(t, stackitem.Null{}, "claimJob",
		nodes[0].ScriptHash(), cid, cycle, int64(4), int64(2500), rootA, rootA)
	aer := c0.CheckHalt(t, h)
	require.Equal(t, "JobClaimed", aer.Events[len(aer.Events)-1].Name)

	c0.InvokeFail(t, renderjobconst.ErrAlreadyClaimed, "claimJob",
		nodes[0].ScriptHash(), cid, cycle, int64(4), int64(2500), rootA, rootA)

	// an agreeing second claim does not freeze the cycle
	m.renderJob.WithSigners(nodes[1]).Invoke(t, stackitem.Null{}, "claimJob",
		nodes[1].ScriptHash(), cid, cycle, int64(4), int64(2500), rootA, rootA)
	m.renderJob.Invoke(t, false, "isSkipped", cid, cycle)

	// the first conflicting root freezes it
	c2 := m.renderJob.WithSigners(nodes[2])
	h = c2.Invoke(t, stackitem.Null{}, "claimJob",
		nodes[2].ScriptHash(), cid, cycle, int64(4), int64(2500), rootB, rootA)
	aer = c2.CheckHalt(t, h)
	names := make([]string, 0, len(aer.Events))
	for _, ev := range aer.Events {
		names = append(names, ev.Name)
	}
	require.Contains(t, names, "CycleSkipped")
	m.renderJob.Invoke(t, true, "isSkipped", cid, cycle)

	// the freeze is sticky even if later claims agree
	m.renderJob.WithSigners(nodes[3]).Invoke(t, stackitem.Null{}, "claimJob",
		nodes[3].ScriptHash(), cid, cycle, int64(4), int64(2500), rootA, rootA)
	m.renderJob.Invoke(t, true, "isSkipped", cid, cycle)

	s, err := m.renderJob.TestInvoke(t, "claimsOf", cid, cycle)
	require.NoError(t, err)
	require.Len(t, s.Pop().Array(), 4)

	// agreeing job roots do not save a cycle when the consensus roots differ
	t.Run("consensus root conflict", func(t *testing.T) {
		cid2 := randomCID()
		m.addJob(t, owner, cid2, 1_0000_0000, 100, 1_0000_0000)

		m.renderJob.WithSigners(nodes[0]).Invoke(t, stackitem.Null{}, "claimJob",
			nodes[0].ScriptHash(), cid2, cycle, int64(2), int64(5000), rootA, rootA)
		m.renderJob.Invoke(t, false, "isSkipped", cid2, cycle)

		c1 := m.renderJob.WithSigners(nodes[1])
		h := c1.Invoke(t, stackitem.Null{}, "claimJob",
			nodes[1].ScriptHash(), cid2, cycle, int64(2), int64(5000), rootA, rootB)
		aer := c1.CheckHalt(t, h)
		names := make([]string, 0, len(aer.Events))
		for _, ev := range aer.Events {
			names = append(names, ev.Name)
		}
		require.Contains(t, names, "CycleSkipped")
		m.renderJob.Invoke(t, true, "isSkipped", cid2, cycle)
	})
}

func TestRenderJobClaimInvoice(t *testing.T) {
	m := newMarketplace(t)

	owner := m.exec.NewAccount(t)
	m.registerOperator(t, owner, 10_0000_0000)
	cid1 := randomCID()
	cid2 := randomCID()
	m.addJob(t, owner, cid1, 5_0000_0000, 100, 5_0000_0000)
	m.addJob(t, owner, cid2, 1_0000_0000, 100, 1_0000_0000)
	ownerNode := m.exec.NewAccount(t)
	m.addNode(t, owner, ownerNode)

	nodeOp := m.exec.NewAccount(t)
	m.registerOperator(t, nodeOp, 0)
	n1 := m.exec.NewAccount(t)
	n2 := m.exec.NewAccount(t)
	m.addNode(t, nodeOp, n1)
	m.addNode(t, nodeOp, n2)

	root := randomBytes(32)
	cycle := m.currentCycle(t)

	claim := func(node neotest.Signer, cid, jobRoot []byte) {
		m.renderJob.WithSigners(node).Invoke(t, stackitem.Null{}, "claimJob",
			node.ScriptHash(), cid, cycle, int64(2), int64(5000), jobRoot, root)
	}
	claim(n1, cid1, root)
	claim(ownerNode, cid1, root)
	claim(n1, cid2, root)
	claim(n2, cid2, randomBytes(32)) // freezes the cycle of cid2

	invCID := randomCID()
	const work, amount = int64(50), int64(2_0000_0000)

	pub, sig := signInvoice(owner.(neotest.SingleSigner), invCID, cid1, n1.ScriptHash(), cycle, work, amount)
	cN1 := m.renderJob.WithSigners(n1)

	cN1.InvokeFail(t, renderjobconst.ErrCycleNotOver, "claimInvoice",
		n1.ScriptHash(), invCID, cid1, cycle, work, amount, pub, sig)

	m.warpCycles(t, 1)

	t.Run("skipped cycle", func(t *testing.T) {
		p, s := signInvoice(owner.(neotest.SingleSigner), randomCID(), cid2, n2.ScriptHash(), cycle, work, int64(1000))
		m.renderJob.WithSigners(n2).InvokeFail(t, renderjobconst.ErrCycleSkipped,
			"claimInvoice", n2.ScriptHash(), randomCID(), cid2, cycle, work, int64(1000), p, s)
	})
	t.Run("self invoice", func(t *testing.T) {
		p, s := signInvoice(owner.(neotest.SingleSigner), invCID, cid1, ownerNode.ScriptHash(), cycle, work, amount)
		m.renderJob.WithSigners(ownerNode).InvokeFail(t, renderjobconst.ErrSelfInvoice,
			"claimInvoice", ownerNode.ScriptHash(), invCID, cid1, cycle, work, amount, p, s)
	})
	t.Run("no claim", func(t *testing.T) {
		p, s := signInvoice(owner.(neotest.SingleSigner), invCID, cid1, n2.ScriptHash(), cycle, work, amount)
		m.renderJob.WithSigners(n2).InvokeFail(t, renderjobconst.ErrNoClaim,
			"claimInvoice", n2.ScriptHash(), invCID, cid1, cycle, work, amount, p, s)
	})
	t.Run("tampered amount", func(t *testing.T) {
		cN1.InvokeFail(t, renderjobconst.ErrSignatureMismatch, "claimInvoice",
			n1.ScriptHash(), invCID, cid1, cycle, work, amount+1, pub, sig)
	})
	t.Run("foreign key", func(t *testing.T) {
		p, s := signInvoice(n1.(neotest.SingleSigner), invCID, cid1, n1.ScriptHash(), cycle, work, amount)
		cN1.InvokeFail(t, renderjobconst.ErrSignatureMismatch, "claimInvoice",
			n1.ScriptHash(), invCID, cid1, cycle, work, amount, p, s)
	})
	t.Run("amount over escrow", func(t *testing.T) {
		const greedy = int64(6_0000_0000)
		p, s := signInvoice(owner.(neotest.SingleSigner), invCID, cid1, n1.ScriptHash(), cycle, work, greedy)
		cN1.InvokeFail(t, renderjobconst.ErrInsufficientEscrow, "claimInvoice",
			n1.ScriptHash(), invCID, cid1, cycle, work, greedy, p, s)
	})
	t.Run("unstaked after claiming", func(t *testing.T) {
		cNodeOp := m.registry.WithSigners(nodeOp)
		cNodeOp.Invoke(t, stackitem.Null{}, "withdrawStake",
			nodeOp.ScriptHash(), n1.ScriptHash())
		cN1.InvokeFail(t, renderjobconst.ErrNotStaked, "claimInvoice",
			n1.ScriptHash(), invCID, cid1, cycle, work, amount, pub, sig)
		cNodeOp.Invoke(t, stackitem.Null{}, "depositStake",
			nodeOp.ScriptHash(), n1.ScriptHash(), nodeStake)
	})

	h := cN1.Invoke(t, stackitem.Null{}, "claimInvoice",
		n1.ScriptHash(), invCID, cid1, cycle, work, amount, pub, sig)
	aer := cN1.CheckHalt(t, h)
	require.Equal(t, "InvoiceClaimed", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, int64(8_0000_0000), "balanceOf", owner.ScriptHash())
	m.registry.Invoke(t, amount, "heldFunds")
	m.renderJob.Invoke(t, amount, "totalHeld")
	m.renderJob.Invoke(t, int64(4_0000_0000), "reservedOf", owner.ScriptHash())

	s, err := m.renderJob.TestInvoke(t, "getJob", cid1)
	require.NoError(t, err)
	job := s.Pop().Array()
	escrow, err := job[2].TryInteger()
	require.NoError(t, err)
	require.Equal(t, int64(3_0000_0000), escrow.Int64())
	held, err := job[8].TryInteger()
	require.NoError(t, err)
	require.Equal(t, amount, held.Int64())

	cN1.InvokeFail(t, renderjobconst.ErrAlreadyInvoiced, "claimInvoice",
		n1.ScriptHash(), invCID, cid1, cycle, work, amount, pub, sig)

	// archival is refused while the invoiced amount is held
	m.renderJob.WithSigners(owner).InvokeFail(t, renderjobconst.ErrHeldFunds,
		"archiveJob", owner.ScriptHash(), cid1)
}

// claimedInvoice drives the happy path up to a claimed invoice: a job of
// the owner, claims of both nodes in a finished cycle and an invoice of n1
// over the given amount.
type claimedInvoice struct {
	m             *marketplace
	owner, nodeOp neotest.Signer
	n1, n2        neotest.Signer
	cid, invCID   []byte
	cycle         int64
	amount        int64
}

func newClaimedInvoice(t *testing.T) *claimedInvoice {
	m := newMarketplace(t)

	f := &claimedInvoice{
		m:      m,
		owner:  m.exec.NewAccount(t),
		nodeOp: m.exec.NewAccount(t),
		n1:     m.exec.NewAccount(t),
		n2:     m.exec.NewAccount(t),
		cid:    randomCID(),
		invCID: randomCID(),
		amount: 2_0000_0000,
	}

	m.registerOperator(t, f.owner, 10_0000_0000)
	m.registerOperator(t, f.nodeOp, 0)
	m.addNode(t, f.nodeOp, f.n1)
	m.addNode(t, f.nodeOp, f.n2)
	m.addJob(t, f.owner, f.cid, 5_0000_0000, 100, 5_0000_0000)

	root := randomBytes(32)
	f.cycle = m.currentCycle(t)
	for _, n := range []neotest.Signer{f.n1, f.n2} {
		m.renderJob.WithSigners(n).Invoke(t, stackitem.Null{}, "claimJob",
			n.ScriptHash(), f.cid, f.cycle, int64(2), int64(5000), root, root)
	}
	m.warpCycles(t, 1)

	const work = int64(50)
	claimInvoice := func(n neotest.Signer, invCID []byte) {
		pub, sig := signInvoice(f.owner.(neotest.SingleSigner), invCID, f.cid,
			n.ScriptHash(), f.cycle, work, f.amount)
		m.renderJob.WithSigners(n).Invoke(t, stackitem.Null{}, "claimInvoice",
			n.ScriptHash(), invCID, f.cid, f.cycle, work, f.amount, pub, sig)
	}
	claimInvoice(f.n1, f.invCID)
	claimInvoice(f.n2, randomCID())

	return f
}

// dropSettlementDelay zeroes the time lock and spaces a block out so that
// the next transaction lands strictly after the invoice timestamps.
func (f *claimedInvoice) dropSettlementDelay(t *testing.T) {
	f.m.renderJob.Invoke(t, stackitem.Null{}, "setConfig",
		[]byte(renderjobconst.SettlementDelayKey), int64(0))
	f.m.exec.AddNewBlock(t)
}

func TestRenderJobForceSettle(t *testing.T) {
	f := newClaimedInvoice(t)
	m := f.m
	cN1 := m.renderJob.WithSigners(f.n1)

	cN1.InvokeFail(t, renderjobconst.ErrNotDue, "forceSettle",
		f.n1.ScriptHash(), f.cid, f.cycle)

	t.Run("never claimed node", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.renderJob.WithSigners(stranger).InvokeFail(t, renderjobconst.ErrNoClaim,
			"forceSettle", stranger.ScriptHash(), f.cid, f.cycle)
	})

	f.dropSettlementDelay(t)

	h := cN1.Invoke(t, stackitem.Null{}, "forceSettle", f.n1.ScriptHash(), f.cid, f.cycle)
	aer := cN1.CheckHalt(t, h)
	require.Equal(t, "InvoiceSettled", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, f.amount, "balanceOf", f.nodeOp.ScriptHash())
	m.registry.Invoke(t, f.amount, "heldFunds")
	m.renderJob.Invoke(t, f.amount, "totalHeld")

	cN1.InvokeFail(t, renderjobconst.ErrAlreadySettled, "forceSettle",
		f.n1.ScriptHash(), f.cid, f.cycle)

	// the second invoice settles independently
	m.renderJob.WithSigners(f.n2).Invoke(t, stackitem.Null{}, "forceSettle",
		f.n2.ScriptHash(), f.cid, f.cycle)
	m.registry.Invoke(t, 2*f.amount, "balanceOf", f.nodeOp.ScriptHash())
	m.registry.Invoke(t, int64(0), "heldFunds")
	m.renderJob.Invoke(t, int64(0), "totalHeld")
}

func TestRenderJobRevokeInvoice(t *testing.T) {
	f := newClaimedInvoice(t)
	m := f.m
	cOwner := m.renderJob.WithSigners(f.owner)

	t.Run("stranger", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.renderJob.WithSigners(stranger).InvokeFail(t, renderjobconst.ErrNotJobOwner,
			"revokeInvoice", stranger.ScriptHash(), f.cid, f.cycle, f.n1.ScriptHash())
	})

	h := cOwner.Invoke(t, stackitem.Null{}, "revokeInvoice",
		f.owner.ScriptHash(), f.cid, f.cycle, f.n1.ScriptHash())
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, "InvoiceRevoked", aer.Events[len(aer.Events)-1].Name)

	cOwner.InvokeFail(t, renderjobconst.ErrAlreadyRevoked, "revokeInvoice",
		f.owner.ScriptHash(), f.cid, f.cycle, f.n1.ScriptHash())

	f.dropSettlementDelay(t)

	// a revoked invoice can never be settled, its held amount stays put
	m.renderJob.WithSigners(f.n1).InvokeFail(t, renderjobconst.ErrRevoked,
		"forceSettle", f.n1.ScriptHash(), f.cid, f.cycle)
	m.renderJob.Invoke(t, 2*f.amount, "totalHeld")
	cOwner.InvokeFail(t, renderjobconst.ErrHeldFunds, "archiveJob",
		f.owner.ScriptHash(), f.cid)

	// revocation of the second invoice is too late once the delay is out
	cOwner.InvokeFail(t, renderjobconst.ErrRevokeWindowClosed, "revokeInvoice",
		f.owner.ScriptHash(), f.cid, f.cycle, f.n2.ScriptHash())
}

func TestRenderJobCycles(t *testing.T) {
	m := newMarketplace(t)

	m.renderJob.Invoke(t, stackitem.NewByteArray(bigint.ToBytes(big.NewInt(testCycleDuration))),
		"config", []byte(renderjobconst.CycleDurationKey))

	s, err := m.renderJob.TestInvoke(t, "epochStart")
	require.NoError(t, err)
	require.Positive(t, s.Pop().BigInt().Int64())

	s, err = m.renderJob.TestInvoke(t, "timeSinceEpoch")
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Pop().BigInt().Int64(), int64(0))

	before := m.currentCycle(t)
	m.warpCycles(t, 3)
	require.Equal(t, before+3, m.currentCycle(t))
}

func TestRenderJobLegacySettlementGate(t *testing.T) {
	m := newMarketplace(t)

	owner := m.exec.NewAccount(t)
	m.registerOperator(t, owner, 3_0000_0000)
	cid := randomCID()
	m.addJob(t, owner, cid, 1_0000_0000, 100, 1_0000_0000)

	m.renderJob.InvokeFail(t, renderjobconst.ErrLegacyOnly, "settleLegacyInvoice",
		cid, owner.ScriptHash(), int64(100))
}

func TestRenderJobDisputeMediation(t *testing.T) {
	t.Skip("funds of a revoked invoice stay held until the parties settle off-system; on-chain arbitration is not implemented")
}
