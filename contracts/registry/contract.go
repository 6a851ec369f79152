package registry

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/registry/registryconst"
	"github.com/hivemesh/hivemesh-contract/contracts/renderjob/renderjobconst"
)

type (
	// Operator is a top-level marketplace account. It owns worker nodes
	// and render jobs and keeps a withdrawable balance in the contract's
	// GAS custody. Operators are archived, never deleted, so the record
	// stays queryable after unregistration.
	Operator struct {
		// Topic of the off-system coordination channel.
		Topic []byte
		// Withdrawable balance in native units.
		Balance int
		// Registration timestamp, ms.
		Registered int
		// Last mutating call timestamp, ms.
		LastActivity int
		// Set on unregistration.
		Archived bool
	}

	// Node is a worker account owned by exactly one operator. The owner
	// reference here and the membership in the operator's node list are
	// deliberately redundant and are both verified on ownership checks.
	Node struct {
		// Owning operator account.
		Operator interop.Hash160
		// Topic of the off-system coordination channel.
		Topic []byte
		// Guarantee amount in native units.
		Stake int
		// Derived predicate: stake covered the requirement when it was
		// last evaluated. Not authoritative, re-evaluated on use.
		Staked bool
		// Registration timestamp, ms.
		Registered int
		// Last mutating call timestamp, ms.
		LastActivity int
		// Set on removal.
		Archived bool
	}
)

const (
	operatorPrefix = 'o'
	nodePrefix     = 'n'
	nodeListPrefix = 'l'

	heldFundsKey = 'h'

	renderJobContractKey  = "renderJobScriptHash"
	invoiceContractKey    = "invoiceScriptHash"
	rateOracleContractKey = "rateOracleScriptHash"
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
		rateOracle interop.Hash160
		renderJob  interop.Hash160
		invoice    interop.Hash160
	})

	if len(args.rateOracle) != interop.Hash160Len {
		panic("incorrect rate oracle script hash")
	}
	if len(args.renderJob) != interop.Hash160Len {
		panic("incorrect render job script hash")
	}
	if len(args.invoice) != interop.Hash160Len {
		panic("incorrect invoice script hash")
	}

	storage.Put(ctx, rateOracleContractKey, args.rateOracle)
	storage.Put(ctx, renderJobContractKey, args.renderJob)
	storage.Put(ctx, invoiceContractKey, args.invoice)
	storage.Put(ctx, heldFundsKey, 0)

	runtime.Log("registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("registry contract updated")
}

// RegisterOperator creates an operator record for the given account with a
// zero balance. The call must be witnessed by the account itself. Accounts
// that ever held an operator or node record, archived ones included, cannot
// register again.
//
// It produces OperatorRegistered notification.
func RegisterOperator(operator interop.Hash160, topic []byte) {
	checkAccount(operator)
	common.CheckOwnerWitness(operator)

	ctx := storage.GetContext()
	if storage.Get(ctx, operatorKey(operator)) != nil ||
		storage.Get(ctx, nodeKey(operator)) != nil {
		panic(registryconst.ErrAlreadyRegistered)
	}

	now := runtime.GetTime()
	common.SetSerialized(ctx, operatorKey(operator), Operator{
		Topic:        topic,
		Balance:      0,
		Registered:   now,
		LastActivity: now,
	})

	runtime.Log("operator registered")
	runtime.Notify("OperatorRegistered", operator, topic, now)
}

// UnregisterOperator removes every node the operator owns (their stakes are
// released into the operator balance), refunds the whole balance back to the
// operator account and marks the record archived. It fails while the
// operator still owns non-archived render jobs.
//
// It produces NodeRemoved notifications for each owned node followed by
// OperatorUnregistered.
func UnregisterOperator(operator interop.Hash160) {
	common.CheckOwnerWitness(operator)

	ctx := storage.GetContext()
	op := mustGetActiveOperator(ctx, operator)

	activeJobs := contract.Call(renderJobContract(ctx), "activeJobsOf",
		contract.ReadOnly, operator).(int)
	if activeJobs != 0 {
		panic(registryconst.ErrPendingJobs)
	}

	nodes := common.GetList(ctx, nodeListKey(operator))
	for i := 0; i < len(nodes); i++ {
		acc := interop.Hash160(nodes[i])
		n := mustGetNode(ctx, acc)
		stake := n.Stake
		op.Balance += stake

		n.Stake = 0
		n.Staked = false
		n.Archived = true
		common.SetSerialized(ctx, nodeKey(acc), n)

		runtime.Notify("NodeRemoved", operator, acc, stake)
	}
	common.SetSerialized(ctx, nodeListKey(operator), [][]byte{})

	common.AcquireGuard(ctx, operator)

	refund := op.Balance
	op.Balance = 0
	op.Archived = true
	op.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, operatorKey(operator), op)

	if refund > 0 {
		transferOut(operator, refund)
	}

	common.ReleaseGuard(ctx, operator)

	runtime.Log("operator unregistered")
	runtime.Notify("OperatorUnregistered", operator, refund)
}

// OnNEP17Payment is a callback for the NEP-17 compatible native GAS
// contract. A plain transfer with no data (or with the receiving operator's
// account as data) is accounted as a balance deposit of an active operator.
// Transfers initiated by the marketplace contracts themselves carry
// common.SelfTransferMarker and are ignored here.
//
// It produces Deposit notification.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	rcv := data.(interop.Hash160)
	if rcv.Equals(common.SelfTransferMarker) {
		return
	}

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("only GAS can be accepted for deposit")
	}

	if amount <= 0 {
		common.AbortWithMessage(registryconst.ErrNonPositiveAmount)
	}

	switch len(rcv) {
	case interop.Hash160Len:
	case 0:
		rcv = from
	default:
		common.AbortWithMessage("invalid data argument, expected Hash160")
	}

	ctx := storage.GetContext()
	op, ok := getOperator(ctx, rcv)
	if !ok || op.Archived {
		common.AbortWithMessage(registryconst.ErrUnknownOperator)
	}

	op.Balance += amount
	op.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, operatorKey(rcv), op)

	runtime.Log("operator deposit accepted")
	runtime.Notify("Deposit", from, rcv, amount)
}

// WithdrawFunds transfers the given amount of GAS from the contract custody
// back to the operator account. The amount must be covered by the operator
// balance minus its reserved funds, i.e. the live sum of escrows of all its
// non-archived render jobs.
//
// It produces Withdrawal notification.
func WithdrawFunds(operator interop.Hash160, amount int) {
	common.CheckOwnerWitness(operator)

	if amount <= 0 {
		panic(registryconst.ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()
	op := mustGetActiveOperator(ctx, operator)

	common.AcquireGuard(ctx, operator)

	reserved := reservedOf(ctx, operator)
	if op.Balance-reserved < amount {
		panic(registryconst.ErrInsufficientBalance)
	}

	op.Balance -= amount
	op.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, operatorKey(operator), op)

	transferOut(operator, amount)

	common.ReleaseGuard(ctx, operator)

	runtime.Log("operator withdrawal done")
	runtime.Notify("Withdrawal", operator, amount)
}

// AddNode registers a worker account owned by the calling operator. The
// node account must not hold any operator or node record, archived ones
// included. The stake payment is transferred from the operator account into
// the contract custody and must cover the current conversion of the fiat
// stake requirement; the node starts staked.
//
// It produces NodeAdded notification.
func AddNode(operator, node interop.Hash160, topic []byte, stake int) {
	checkAccount(node)
	common.CheckOwnerWitness(operator)

	ctx := storage.GetContext()
	op := mustGetActiveOperator(ctx, operator)

	if storage.Get(ctx, operatorKey(node)) != nil ||
		storage.Get(ctx, nodeKey(node)) != nil {
		panic(registryconst.ErrAlreadyRegistered)
	}

	if stake < requiredStake(ctx) {
		panic(registryconst.ErrInsufficientStake)
	}

	common.AcquireGuard(ctx, operator)
	transferIn(operator, stake)
	common.ReleaseGuard(ctx, operator)

	now := runtime.GetTime()
	common.SetSerialized(ctx, nodeKey(node), Node{
		Operator:     operator,
		Topic:        topic,
		Stake:        stake,
		Staked:       true,
		Registered:   now,
		LastActivity: now,
	})

	nodes := common.GetList(ctx, nodeListKey(operator))
	nodes = append(nodes, node)
	common.SetSerialized(ctx, nodeListKey(operator), nodes)

	op.LastActivity = now
	common.SetSerialized(ctx, operatorKey(operator), op)

	runtime.Log("node added")
	runtime.Notify("NodeAdded", operator, node, stake)
}

// RemoveNode releases the node's remaining stake into the operator balance,
// marks the node archived and unstaked and drops it from the owner's node
// list. Ownership is verified structurally: the node's owner field must
// match the caller and the node must be present in the caller's node list.
//
// It produces NodeRemoved notification.
func RemoveNode(operator, node interop.Hash160) {
	common.CheckOwnerWitness(operator)

	ctx := storage.GetContext()
	op := mustGetActiveOperator(ctx, operator)

	if !isNode(ctx, operator, node) {
		panic(registryconst.ErrNotOwnedNode)
	}

	n := mustGetNode(ctx, node)
	stake := n.Stake

	n.Stake = 0
	n.Staked = false
	n.Archived = true
	n.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, nodeKey(node), n)

	dropFromNodeList(ctx, operator, node)

	op.Balance += stake
	op.LastActivity = n.LastActivity
	common.SetSerialized(ctx, operatorKey(operator), op)

	runtime.Log("node removed")
	runtime.Notify("NodeRemoved", operator, node, stake)
}

// DepositStake tops up the node's stake with a GAS payment from the owning
// operator and re-evaluates the staked predicate against the current
// conversion of the fiat stake requirement.
//
// It produces StakeDeposit notification.
func DepositStake(operator, node interop.Hash160, amount int) {
	common.CheckOwnerWitness(operator)

	if amount <= 0 {
		panic(registryconst.ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()
	mustGetActiveOperator(ctx, operator)

	if !isNode(ctx, operator, node) {
		panic(registryconst.ErrNotOwnedNode)
	}

	common.AcquireGuard(ctx, operator)
	transferIn(operator, amount)
	common.ReleaseGuard(ctx, operator)

	n := mustGetNode(ctx, node)
	n.Stake += amount
	n.Staked = n.Stake >= requiredStake(ctx)
	n.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, nodeKey(node), n)

	runtime.Log("stake deposited")
	runtime.Notify("StakeDeposit", operator, node, amount)
}

// WithdrawStake drains the node's whole stake into the operator balance and
// flips the staked predicate off. The node record stays registered and can
// be staked again with DepositStake.
//
// It produces StakeWithdrawal notification.
func WithdrawStake(operator, node interop.Hash160) {
	common.CheckOwnerWitness(operator)

	ctx := storage.GetContext()
	op := mustGetActiveOperator(ctx, operator)

	if !isNode(ctx, operator, node) {
		panic(registryconst.ErrNotOwnedNode)
	}

	n := mustGetNode(ctx, node)
	amount := n.Stake
	if amount <= 0 {
		panic(registryconst.ErrNonPositiveAmount)
	}

	n.Stake = 0
	n.Staked = false
	n.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, nodeKey(node), n)

	op.Balance += amount
	op.LastActivity = n.LastActivity
	common.SetSerialized(ctx, operatorKey(operator), op)

	runtime.Log("stake withdrawn")
	runtime.Notify("StakeWithdrawal", operator, node, amount)
}

// Debit moves the given amount from the operator balance into the contract
// held-funds pool backing claim holding balances. It can be invoked only by
// the render job and invoice contracts.
//
// It produces Transfer notification with empty receiver.
func Debit(operator interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()
	checkSettlementCaller(ctx)

	if amount <= 0 {
		panic(registryconst.ErrNonPositiveAmount)
	}

	op := mustGetActiveOperator(ctx, operator)
	if op.Balance < amount {
		panic(registryconst.ErrInsufficientBalance)
	}

	op.Balance -= amount
	common.SetSerialized(ctx, operatorKey(operator), op)

	held := common.GetIntOrZero(ctx, heldFundsKey)
	storage.Put(ctx, heldFundsKey, held+amount)

	runtime.Notify("Transfer", operator, interop.Hash160(nil), amount, details)
}

// Credit moves the given amount from the contract held-funds pool into the
// operator balance. It can be invoked only by the render job and invoice
// contracts.
//
// It produces Transfer notification with empty sender.
func Credit(operator interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()
	checkSettlementCaller(ctx)

	if amount <= 0 {
		panic(registryconst.ErrNonPositiveAmount)
	}

	op := mustGetActiveOperator(ctx, operator)
	op.Balance += amount
	common.SetSerialized(ctx, operatorKey(operator), op)

	held := common.GetIntOrZero(ctx, heldFundsKey)
	storage.Put(ctx, heldFundsKey, held-amount)

	runtime.Notify("Transfer", interop.Hash160(nil), operator, amount, details)
}

// IsOperator returns true if the account is a registered, non-archived
// operator.
func IsOperator(operator interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	op, ok := getOperator(ctx, operator)
	return ok && !op.Archived
}

// IsNode returns true only if all three structural checks hold: the node is
// registered and not archived, its owner field equals the operator and the
// node is present in the operator's node list. The owner field and the list
// can in principle diverge, so both are consulted.
func IsNode(operator, node interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isNode(ctx, operator, node)
}

// IsStakedNode returns true if the node is registered, not archived and its
// stake covers the current conversion of the fiat stake requirement. The
// rate oracle is re-queried on every call: exchange rate moves can unstake
// a node without any state change on this contract.
func IsStakedNode(node interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	n, ok := getNode(ctx, node)
	if !ok || n.Archived {
		return false
	}

	return n.Stake >= requiredStake(ctx)
}

// Operators returns an iterator over accounts of all registered operators,
// archived ones included.
func Operators() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{operatorPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// NodeOperator returns the account of the operator owning the node. The
// reference is kept on archived nodes as well.
func NodeOperator(node interop.Hash160) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	n := mustGetNode(ctx, node)
	return n.Operator
}

// Nodes returns the accounts of all non-archived nodes owned by the
// operator, in registration order.
func Nodes(operator interop.Hash160) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	list := common.GetList(ctx, nodeListKey(operator))
	result := []interop.Hash160{}
	for i := 0; i < len(list); i++ {
		result = append(result, interop.Hash160(list[i]))
	}

	return result
}

// BalanceOf returns the operator's withdrawable balance. With the strict
// queries flag set in the render job contract config, archived operators
// are reported as unknown.
func BalanceOf(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	op := mustGetQueryableOperator(ctx, operator)
	return op.Balance
}

// StakeOf returns the node's current stake amount.
func StakeOf(node interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	n := mustGetNode(ctx, node)
	return n.Stake
}

// ReservedFunds returns the live sum of escrow balances of all non-archived
// render jobs owned by the operator.
func ReservedFunds(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	mustGetQueryableOperator(ctx, operator)
	return reservedOf(ctx, operator)
}

// FreeBalance returns the part of the operator balance not backing any job
// escrow, i.e. the amount available for withdrawal or new escrows.
func FreeBalance(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	op := mustGetQueryableOperator(ctx, operator)
	return op.Balance - reservedOf(ctx, operator)
}

// LastActivity returns the timestamp of the last mutating call involving
// the operator, in milliseconds.
func LastActivity(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	op := mustGetQueryableOperator(ctx, operator)
	return op.LastActivity
}

// RequiredStake returns the current node stake requirement in native
// units, converted from the fixed fiat amount by the rate oracle.
func RequiredStake() int {
	ctx := storage.GetReadOnlyContext()
	return requiredStake(ctx)
}

// HeldFunds returns the aggregate amount debited from operator balances
// and not yet credited back, i.e. the sum of all outstanding claim holding
// balances.
func HeldFunds() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, heldFundsKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func operatorKey(acc interop.Hash160) []byte {
	return append([]byte{operatorPrefix}, acc...)
}

func nodeKey(acc interop.Hash160) []byte {
	return append([]byte{nodePrefix}, acc...)
}

func nodeListKey(acc interop.Hash160) []byte {
	return append([]byte{nodeListPrefix}, acc...)
}

func checkAccount(acc interop.Hash160) {
	if len(acc) != interop.Hash160Len {
		panic("incorrect account script hash")
	}
}

func getOperator(ctx storage.Context, acc interop.Hash160) (Operator, bool) {
	data := storage.Get(ctx, operatorKey(acc))
	if data == nil {
		return Operator{}, false
	}

	return std.Deserialize(data.([]byte)).(Operator), true
}

func mustGetActiveOperator(ctx storage.Context, acc interop.Hash160) Operator {
	op, ok := getOperator(ctx, acc)
	if !ok {
		panic(registryconst.ErrUnknownOperator)
	}
	if op.Archived {
		panic(registryconst.ErrOperatorArchived)
	}

	return op
}

// mustGetQueryableOperator resolves an operator for a read-only query.
// Archived operators stay queryable unless the strict queries flag is set
// in the render job contract config.
func mustGetQueryableOperator(ctx storage.Context, acc interop.Hash160) Operator {
	op, ok := getOperator(ctx, acc)
	if !ok {
		panic(registryconst.ErrUnknownOperator)
	}
	if op.Archived && strictQueries(ctx) {
		panic(registryconst.ErrUnknownOperator)
	}

	return op
}

func getNode(ctx storage.Context, acc interop.Hash160) (Node, bool) {
	data := storage.Get(ctx, nodeKey(acc))
	if data == nil {
		return Node{}, false
	}

	return std.Deserialize(data.([]byte)).(Node), true
}

func mustGetNode(ctx storage.Context, acc interop.Hash160) Node {
	n, ok := getNode(ctx, acc)
	if !ok {
		panic(registryconst.ErrUnknownNode)
	}

	return n
}

func isNode(ctx storage.Context, operator, node interop.Hash160) bool {
	n, ok := getNode(ctx, node)
	if !ok || n.Archived {
		return false
	}

	if !n.Operator.Equals(operator) {
		return false
	}

	nodes := common.GetList(ctx, nodeListKey(operator))
	for i := 0; i < len(nodes); i++ {
		if node.Equals(nodes[i]) {
			return true
		}
	}

	return false
}

// dropFromNodeList rewrites the operator's list without the given node.
func dropFromNodeList(ctx storage.Context, operator, node interop.Hash160) {
	nodes := common.GetList(ctx, nodeListKey(operator))
	result := [][]byte{}
	for i := 0; i < len(nodes); i++ {
		if !node.Equals(nodes[i]) {
			result = append(result, nodes[i])
		}
	}
	common.SetSerialized(ctx, nodeListKey(operator), result)
}

func renderJobContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, renderJobContractKey).(interop.Hash160)
}

func checkSettlementCaller(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	renderJob := renderJobContract(ctx)
	invoice := storage.Get(ctx, invoiceContractKey).(interop.Hash160)
	if !caller.Equals(renderJob) && !caller.Equals(invoice) {
		panic(registryconst.ErrSettlementOnly)
	}
}

func reservedOf(ctx storage.Context, operator interop.Hash160) int {
	return contract.Call(renderJobContract(ctx), "reservedOf",
		contract.ReadOnly, operator).(int)
}

func strictQueries(ctx storage.Context) bool {
	val := contract.Call(renderJobContract(ctx), "config",
		contract.ReadOnly, []byte(renderjobconst.StrictQueriesKey))
	if val == nil {
		return false
	}

	return val.(int) != 0
}

func requiredStake(ctx storage.Context) int {
	oracle := storage.Get(ctx, rateOracleContractKey).(interop.Hash160)
	return contract.Call(oracle, "fiatCentsToNative",
		contract.ReadOnly, registryconst.StakeFiatCents).(int)
}

func transferIn(from interop.Hash160, amount int) {
	if !gas.Transfer(from, runtime.GetExecutingScriptHash(), amount, common.SelfTransferMarker) {
		panic(registryconst.ErrTransferFailed)
	}
}

func transferOut(to interop.Hash160, amount int) {
	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic(registryconst.ErrTransferFailed)
	}
}
