package tests

import (
	"crypto/sha256"
	"math/big"
	"math/rand"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/hivemesh/hivemesh-contract/contracts/renderjob/renderjobconst"
	"github.com/hivemesh/hivemesh-contract/contracts/registry/registryconst"
	"github.com/hivemesh/hivemesh-contract/internal/testcontracts/rateoracle"
	"github.com/stretchr/testify/require"
)

const (
	registryPath   = "../contracts/registry"
	renderJobPath  = "../contracts/renderjob"
	invoicePath    = "../contracts/invoice"
	rateOraclePath = "../internal/testcontracts/rateoracle"
)

// testCycleDuration is long enough for the current cycle to stay put for
// the whole test run; tests that need finished cycles shift the epoch start
// back instead of waiting.
const testCycleDuration = 60 * 60 * 1000

// nodeStake is the stake covering the fiat requirement at the default
// oracle rate.
const nodeStake = int64(registryconst.StakeFiatCents) * rateoracle.DefaultNativePerCent

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// randomCID produces a base58 content identifier the way marketplace
// clients derive them from document digests.
func randomCID() []byte {
	return []byte(base58.Encode(randomBytes(32)))
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// marketplace bundles committee invokers of all Hivemesh contracts deployed
// on a fresh single-node chain, wired to each other through precompiled
// hashes.
type marketplace struct {
	exec       *neotest.Executor
	registry   *neotest.ContractInvoker
	renderJob  *neotest.ContractInvoker
	invoice    *neotest.ContractInvoker
	rateOracle *neotest.ContractInvoker
	gas        *neotest.ContractInvoker

	registryHash  util.Uint160
	renderJobHash util.Uint160
	invoiceHash   util.Uint160
}

func newMarketplace(t *testing.T) *marketplace {
	e := newExecutor(t)

	ctrOracle := neotest.CompileFile(t, e.CommitteeHash, rateOraclePath, path.Join(rateOraclePath, "config.yml"))
	ctrRegistry := neotest.CompileFile(t, e.CommitteeHash, registryPath, path.Join(registryPath, "config.yml"))
	ctrRenderJob := neotest.CompileFile(t, e.CommitteeHash, renderJobPath, path.Join(renderJobPath, "config.yml"))
	ctrInvoice := neotest.CompileFile(t, e.CommitteeHash, invoicePath, path.Join(invoicePath, "config.yml"))

	e.DeployContract(t, ctrOracle, nil)
	e.DeployContract(t, ctrRegistry, []interface{}{ctrOracle.Hash, ctrRenderJob.Hash, ctrInvoice.Hash})
	e.DeployContract(t, ctrRenderJob, []interface{}{ctrRegistry.Hash, ctrInvoice.Hash, int64(testCycleDuration), int64(0)})
	e.DeployContract(t, ctrInvoice, []interface{}{ctrRegistry.Hash, ctrRenderJob.Hash})

	return &marketplace{
		exec:          e,
		registry:      e.CommitteeInvoker(ctrRegistry.Hash),
		renderJob:     e.CommitteeInvoker(ctrRenderJob.Hash),
		invoice:       e.CommitteeInvoker(ctrInvoice.Hash),
		rateOracle:    e.CommitteeInvoker(ctrOracle.Hash),
		gas:           e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas)),
		registryHash:  ctrRegistry.Hash,
		renderJobHash: ctrRenderJob.Hash,
		invoiceHash:   ctrInvoice.Hash,
	}
}

// registerOperator registers the account and optionally deposits GAS into
// its marketplace balance.
func (m *marketplace) registerOperator(t *testing.T, acc neotest.Signer, deposit int64) {
	m.registry.WithSigners(acc).Invoke(t, stackitem.Null{}, "registerOperator",
		acc.ScriptHash(), []byte("blender"))
	if deposit > 0 {
		m.depositGAS(t, acc, deposit)
	}
}

func (m *marketplace) depositGAS(t *testing.T, acc neotest.Signer, amount int64) {
	m.gas.WithSigners(acc).Invoke(t, true, "transfer",
		acc.ScriptHash(), m.registryHash, amount, nil)
}

// addNode registers the node account under the operator with the minimum
// sufficient stake.
func (m *marketplace) addNode(t *testing.T, operator, node neotest.Signer) {
	m.registry.WithSigners(operator).Invoke(t, stackitem.Null{}, "addNode",
		operator.ScriptHash(), node.ScriptHash(), []byte("blender"), nodeStake)
}

func (m *marketplace) addJob(t *testing.T, owner neotest.Signer, cid []byte, escrow, work, cost int64) {
	m.renderJob.WithSigners(owner).Invoke(t, stackitem.Null{}, "addJob",
		owner.ScriptHash(), cid, escrow, work, cost)
}

func (m *marketplace) currentCycle(t *testing.T) int64 {
	s, err := m.renderJob.TestInvoke(t, "currentCycle")
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

// warpCycles shifts the epoch start back by the given number of cycles,
// making the chain believe they have already elapsed.
func (m *marketplace) warpCycles(t *testing.T, n int64) {
	s, err := m.renderJob.TestInvoke(t, "epochStart")
	require.NoError(t, err)
	start := s.Pop().BigInt().Int64()

	m.renderJob.Invoke(t, stackitem.Null{}, "setConfig",
		[]byte(renderjobconst.EpochStartKey), start-n*testCycleDuration)
}

// signInvoice authorizes the invoice with the job owner's key the way the
// render job contract expects: the signed message is the concatenation of
// the invoice CID, the job ID, the owner and node accounts and the integer
// encodings of cycle, work and amount.
func signInvoice(owner neotest.SingleSigner, invoiceCID, jobCID []byte, node util.Uint160, cycle, work, amount int64) ([]byte, []byte) {
	jobID := sha256.Sum256(jobCID)

	msg := append([]byte{}, invoiceCID...)
	msg = append(msg, jobID[:]...)
	msg = append(msg, owner.ScriptHash().BytesBE()...)
	msg = append(msg, node.BytesBE()...)
	msg = append(msg, bigint.ToBytes(big.NewInt(cycle))...)
	msg = append(msg, bigint.ToBytes(big.NewInt(work))...)
	msg = append(msg, bigint.ToBytes(big.NewInt(amount))...)

	priv := owner.Account().PrivateKey()
	return priv.PublicKey().Bytes(), priv.Sign(msg)
}
