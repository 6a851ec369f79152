package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/registry/registryconst"
	"github.com/hivemesh/hivemesh-contract/internal/testcontracts/rateoracle"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterOperator(t *testing.T) {
	m := newMarketplace(t)

	acc := m.exec.NewAccount(t)
	cAcc := m.registry.WithSigners(acc)

	m.registry.InvokeFail(t, common.ErrOwnerWitnessFailed, "registerOperator",
		acc.ScriptHash(), []byte("blender"))

	h := cAcc.Invoke(t, stackitem.Null{}, "registerOperator", acc.ScriptHash(), []byte("blender"))
	aer := cAcc.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "OperatorRegistered", aer.Events[0].Name)

	m.registry.Invoke(t, true, "isOperator", acc.ScriptHash())
	m.registry.Invoke(t, int64(0), "balanceOf", acc.ScriptHash())

	cAcc.InvokeFail(t, registryconst.ErrAlreadyRegistered, "registerOperator",
		acc.ScriptHash(), []byte("blender"))
}

func TestRegistryDeposit(t *testing.T) {
	m := newMarketplace(t)

	acc := m.exec.NewAccount(t)
	m.registerOperator(t, acc, 0)

	const amount = 2_0000_0000

	h := m.gas.WithSigners(acc).Invoke(t, true, "transfer",
		acc.ScriptHash(), m.registryHash, int64(amount), nil)
	aer := m.gas.CheckHalt(t, h)
	require.Equal(t, "Deposit", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, int64(amount), "balanceOf", acc.ScriptHash())
	m.registry.Invoke(t, int64(amount), "freeBalance", acc.ScriptHash())

	t.Run("deposit for another operator", func(t *testing.T) {
		other := m.exec.NewAccount(t)
		m.registerOperator(t, other, 0)

		m.gas.WithSigners(acc).Invoke(t, true, "transfer",
			acc.ScriptHash(), m.registryHash, int64(amount), other.ScriptHash())

		m.registry.Invoke(t, int64(amount), "balanceOf", other.ScriptHash())
		m.registry.Invoke(t, int64(amount), "balanceOf", acc.ScriptHash())
	})
}

func TestRegistryWithdrawFunds(t *testing.T) {
	m := newMarketplace(t)

	acc := m.exec.NewAccount(t)
	m.registerOperator(t, acc, 3_0000_0000)
	cAcc := m.registry.WithSigners(acc)

	cAcc.InvokeFail(t, registryconst.ErrNonPositiveAmount, "withdrawFunds",
		acc.ScriptHash(), int64(0))
	cAcc.InvokeFail(t, registryconst.ErrInsufficientBalance, "withdrawFunds",
		acc.ScriptHash(), int64(5_0000_0000))

	h := cAcc.Invoke(t, stackitem.Null{}, "withdrawFunds", acc.ScriptHash(), int64(1_0000_0000))
	aer := cAcc.CheckHalt(t, h)
	require.Equal(t, "Withdrawal", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, int64(2_0000_0000), "balanceOf", acc.ScriptHash())
}

func TestRegistryAddNode(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	node := m.exec.NewAccount(t)
	m.registerOperator(t, op, 0)
	cOp := m.registry.WithSigners(op)

	cOp.InvokeFail(t, registryconst.ErrInsufficientStake, "addNode",
		op.ScriptHash(), node.ScriptHash(), []byte("blender"), nodeStake-1)

	h := cOp.Invoke(t, stackitem.Null{}, "addNode",
		op.ScriptHash(), node.ScriptHash(), []byte("blender"), nodeStake)
	aer := cOp.CheckHalt(t, h)
	require.Equal(t, "NodeAdded", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, true, "isNode", op.ScriptHash(), node.ScriptHash())
	m.registry.Invoke(t, true, "isStakedNode", node.ScriptHash())
	m.registry.Invoke(t, nodeStake, "stakeOf", node.ScriptHash())
	m.registry.Invoke(t, op.ScriptHash(), "nodeOperator", node.ScriptHash())

	s, err := m.registry.TestInvoke(t, "nodes", op.ScriptHash())
	require.NoError(t, err)
	list := s.Pop().Array()
	require.Len(t, list, 1)
	acc, err := list[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, node.ScriptHash().BytesBE(), acc)

	cOp.InvokeFail(t, registryconst.ErrAlreadyRegistered, "addNode",
		op.ScriptHash(), node.ScriptHash(), []byte("blender"), nodeStake)

	t.Run("node account is not an operator", func(t *testing.T) {
		m.registry.WithSigners(node).InvokeFail(t, registryconst.ErrAlreadyRegistered,
			"registerOperator", node.ScriptHash(), []byte("blender"))
	})
}

func TestRegistryStakeLifecycle(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	node := m.exec.NewAccount(t)
	m.registerOperator(t, op, 0)
	m.addNode(t, op, node)
	cOp := m.registry.WithSigners(op)

	cOp.Invoke(t, stackitem.Null{}, "withdrawStake", op.ScriptHash(), node.ScriptHash())
	m.registry.Invoke(t, false, "isStakedNode", node.ScriptHash())
	m.registry.Invoke(t, int64(0), "stakeOf", node.ScriptHash())
	m.registry.Invoke(t, nodeStake, "balanceOf", op.ScriptHash())

	cOp.Invoke(t, stackitem.Null{}, "depositStake", op.ScriptHash(), node.ScriptHash(), nodeStake)
	m.registry.Invoke(t, true, "isStakedNode", node.ScriptHash())
	m.registry.Invoke(t, nodeStake, "stakeOf", node.ScriptHash())

	t.Run("foreign node", func(t *testing.T) {
		stranger := m.exec.NewAccount(t)
		m.registerOperator(t, stranger, 0)
		m.registry.WithSigners(stranger).InvokeFail(t, registryconst.ErrNotOwnedNode,
			"depositStake", stranger.ScriptHash(), node.ScriptHash(), nodeStake)
		m.registry.WithSigners(stranger).InvokeFail(t, registryconst.ErrNotOwnedNode,
			"removeNode", stranger.ScriptHash(), node.ScriptHash())
	})
}

func TestRegistryRemoveNode(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	node := m.exec.NewAccount(t)
	sibling := m.exec.NewAccount(t)
	m.registerOperator(t, op, 0)
	m.addNode(t, op, node)
	m.addNode(t, op, sibling)
	cOp := m.registry.WithSigners(op)

	h := cOp.Invoke(t, stackitem.Null{}, "removeNode", op.ScriptHash(), node.ScriptHash())
	aer := cOp.CheckHalt(t, h)
	require.Equal(t, "NodeRemoved", aer.Events[len(aer.Events)-1].Name)

	m.registry.Invoke(t, false, "isNode", op.ScriptHash(), node.ScriptHash())
	m.registry.Invoke(t, false, "isStakedNode", node.ScriptHash())

	// the sibling survives the node list rewrite
	s, err := m.registry.TestInvoke(t, "nodes", op.ScriptHash())
	require.NoError(t, err)
	list := s.Pop().Array()
	require.Len(t, list, 1)
	acc, err := list[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, sibling.ScriptHash().BytesBE(), acc)

	// the stake is released into the operator balance, not the wallet
	m.registry.Invoke(t, nodeStake, "balanceOf", op.ScriptHash())

	cOp.InvokeFail(t, registryconst.ErrNotOwnedNode, "removeNode",
		op.ScriptHash(), node.ScriptHash())
}

func TestRegistryUnregisterOperator(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	node := m.exec.NewAccount(t)
	m.registerOperator(t, op, 5_0000_0000)
	m.addNode(t, op, node)
	cOp := m.registry.WithSigners(op)

	cid := randomCID()
	m.addJob(t, op, cid, 1_0000_0000, 100, 1_0000_0000)
	cOp.InvokeFail(t, registryconst.ErrPendingJobs, "unregisterOperator", op.ScriptHash())

	m.renderJob.WithSigners(op).Invoke(t, stackitem.Null{}, "archiveJob", op.ScriptHash(), cid)

	h := cOp.Invoke(t, stackitem.Null{}, "unregisterOperator", op.ScriptHash())
	aer := cOp.CheckHalt(t, h)
	require.Equal(t, "OperatorUnregistered", aer.Events[len(aer.Events)-1].Name)

	// the NodeRemoved notification carries the released stake
	removed := false
	for _, ev := range aer.Events {
		if ev.Name != "NodeRemoved" {
			continue
		}
		removed = true
		items := ev.Item.Value().([]stackitem.Item)
		stake, err := items[2].TryInteger()
		require.NoError(t, err)
		require.Equal(t, nodeStake, stake.Int64())
	}
	require.True(t, removed)

	m.registry.Invoke(t, false, "isOperator", op.ScriptHash())
	m.registry.Invoke(t, false, "isNode", op.ScriptHash(), node.ScriptHash())
	m.registry.Invoke(t, false, "isStakedNode", node.ScriptHash())
}

func TestRegistrySettlementGate(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	m.registerOperator(t, op, 1_0000_0000)

	m.registry.InvokeFail(t, registryconst.ErrSettlementOnly, "debit",
		op.ScriptHash(), int64(100), []byte{})
	m.registry.InvokeFail(t, registryconst.ErrSettlementOnly, "credit",
		op.ScriptHash(), int64(100), []byte{})
}

func TestRegistryOperatorsIterator(t *testing.T) {
	m := newMarketplace(t)

	accs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		acc := m.exec.NewAccount(t)
		m.registerOperator(t, acc, 0)
		accs = append(accs, string(acc.ScriptHash().BytesBE()))
	}

	s, err := m.registry.TestInvoke(t, "operators")
	require.NoError(t, err)

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	items := iteratorToArray(iter)
	require.Len(t, items, 3)

	got := make(map[string]bool, len(items))
	for _, item := range items {
		b, err := item.TryBytes()
		require.NoError(t, err)
		got[string(b)] = true
	}
	for _, acc := range accs {
		require.True(t, got[acc])
	}
}

func TestRegistryRequiredStake(t *testing.T) {
	m := newMarketplace(t)

	op := m.exec.NewAccount(t)
	node := m.exec.NewAccount(t)
	m.registerOperator(t, op, 0)
	m.addNode(t, op, node)

	m.registry.Invoke(t, nodeStake, "requiredStake")

	// a rate move re-prices the requirement and can unstake a node
	// without any registry state change
	m.rateOracle.Invoke(t, stackitem.Null{}, "setRate", int64(2*rateoracle.DefaultNativePerCent))
	m.registry.Invoke(t, 2*nodeStake, "requiredStake")
	m.registry.Invoke(t, false, "isStakedNode", node.ScriptHash())

	m.registry.WithSigners(op).Invoke(t, stackitem.Null{}, "depositStake",
		op.ScriptHash(), node.ScriptHash(), nodeStake)
	m.registry.Invoke(t, true, "isStakedNode", node.ScriptHash())
}

func TestRegistryVersion(t *testing.T) {
	m := newMarketplace(t)
	m.registry.Invoke(t, int64(common.Version), "version")
	m.renderJob.Invoke(t, int64(common.Version), "version")
	m.invoice.Invoke(t, int64(common.Version), "version")
}
