package renderjob

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/hivemesh/hivemesh-contract/common"
	"github.com/hivemesh/hivemesh-contract/contracts/renderjob/renderjobconst"
)

type (
	// Job is a render order backed by an escrow reserved on the owning
	// operator's registry balance. Jobs are identified by the SHA-256
	// hash of their content identifier and are archived, never deleted.
	Job struct {
		// Content identifier of the job description.
		CID []byte
		// Owning operator account.
		Owner interop.Hash160
		// Escrow still available for invoicing, native units.
		Escrow int
		// Declared total amount of work units.
		EstimatedWork int
		// Declared total cost, native units.
		EstimatedCost int
		// Submission timestamp, ms.
		Submitted int
		// Running total of invoiced work units.
		InvoicedWork int
		// Running total of invoiced cost, native units.
		InvoicedCost int
		// Sum of claim holding balances awaiting settlement.
		Held int
		// Set on archival.
		Archived bool
	}

	// Claim records one node's participation in a job within one cycle,
	// together with the invoice state once the cycle is over.
	Claim struct {
		// Claiming node account.
		Node interop.Hash160
		// Number of nodes the claimer observed on the job.
		NodeCount int
		// Declared work share in parts of ShareDenominator.
		NodeShare int
		// The claimer's own result root for the cycle.
		JobRoot []byte
		// The root the claimer expects the other nodes to have.
		ConsensusRoot []byte
		// Content identifier of the claimed invoice, empty until the
		// invoice is claimed.
		InvoiceCID []byte
		// Amount held for this claim, native units. Zero after
		// settlement.
		Held int
		// Invoiced work units.
		InvoicedWork int
		// Invoice claim timestamp, ms. Starts the settlement delay.
		InvoicedTime int
		// Set when the job owner revokes the invoice.
		Revoked bool
	}

	// CycleClaims is the claim set of one job within one cycle. Once
	// Skipped is set by a root conflict, it is never cleared.
	CycleClaims struct {
		Skipped bool
		Claims  []Claim
	}
)

const (
	jobPrefix      = 'j'
	ownerJobPrefix = 'o'
	claimsPrefix   = 'c'

	totalHeldKey = 't'

	registryContractKey = "registryScriptHash"
	invoiceContractKey  = "invoiceScriptHash"
)

var configPrefix = []byte("config")

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		registry      interop.Hash160
		invoice       interop.Hash160
		cycleDuration int
		epochStart    int
	})

	if len(args.registry) != interop.Hash160Len {
		panic("incorrect registry script hash")
	}
	if len(args.invoice) != interop.Hash160Len {
		panic("incorrect invoice script hash")
	}
	if args.cycleDuration <= 0 {
		panic(common.ErrCycleDuration)
	}

	epochStart := args.epochStart
	if epochStart == 0 {
		epochStart = runtime.GetTime()
	}

	storage.Put(ctx, registryContractKey, args.registry)
	storage.Put(ctx, invoiceContractKey, args.invoice)
	storage.Put(ctx, totalHeldKey, 0)

	setConfig(ctx, renderjobconst.CycleDurationKey, args.cycleDuration)
	setConfig(ctx, renderjobconst.EpochStartKey, epochStart)

	runtime.Log("render job contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("render job contract updated")
}

// AddJob submits a render order of the operator. The job is identified by
// the SHA-256 hash of cid and its CID can never be reused, archived jobs
// included. The escrow is not moved anywhere: it becomes a lien on the
// operator's registry balance and must fit into the balance part not yet
// reserved by other jobs.
//
// It produces JobAdded notification.
func AddJob(owner interop.Hash160, cid []byte, escrow, estimatedWork, estimatedCost int) {
	common.CheckOwnerWitness(owner)

	if escrow <= 0 || estimatedWork <= 0 || estimatedCost <= 0 {
		panic(renderjobconst.ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()
	jobID := crypto.Sha256(cid)

	if storage.Get(ctx, jobKey(jobID)) != nil {
		panic(renderjobconst.ErrJobExists)
	}

	free := contract.Call(registryContract(ctx), "freeBalance",
		contract.ReadOnly, owner).(int)
	if free < escrow {
		panic(renderjobconst.ErrInsufficientEscrow)
	}

	now := runtime.GetTime()
	common.SetSerialized(ctx, jobKey(jobID), Job{
		CID:           cid,
		Owner:         owner,
		Escrow:        escrow,
		EstimatedWork: estimatedWork,
		EstimatedCost: estimatedCost,
		Submitted:     now,
	})
	storage.Put(ctx, ownerJobKey(owner, jobID), cid)

	runtime.Log("render job added")
	runtime.Notify("JobAdded", owner, cid, escrow, estimatedWork, estimatedCost)
}

// TopUpFunds raises the job escrow by the given amount. Like the initial
// escrow, the raise must fit into the owner's free registry balance.
//
// It produces JobFunded notification.
func TopUpFunds(owner interop.Hash160, cid []byte, amount int) {
	common.CheckOwnerWitness(owner)

	if amount <= 0 {
		panic(renderjobconst.ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()
	jobID := crypto.Sha256(cid)
	job := mustGetActiveJob(ctx, jobID)

	checkJobOwner(ctx, job, owner, jobID)

	free := contract.Call(registryContract(ctx), "freeBalance",
		contract.ReadOnly, owner).(int)
	if free < amount {
		panic(renderjobconst.ErrInsufficientEscrow)
	}

	job.Escrow += amount
	common.SetSerialized(ctx, jobKey(jobID), job)

	runtime.Notify("JobFunded", owner, cid, amount)
}

// ArchiveJob finishes the job and releases its remaining escrow back into
// the owner's free balance. Archival is refused while any invoiced amount
// is still held for settlement. Claims and invoices of past cycles stay
// queryable.
//
// It produces JobArchived notification.
func ArchiveJob(owner interop.Hash160, cid []byte) {
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	jobID := crypto.Sha256(cid)
	job := mustGetActiveJob(ctx, jobID)

	checkJobOwner(ctx, job, owner, jobID)

	if job.Held != 0 {
		panic(renderjobconst.ErrHeldFunds)
	}

	released := job.Escrow
	job.Escrow = 0
	job.Archived = true
	common.SetSerialized(ctx, jobKey(jobID), job)

	runtime.Log("render job archived")
	runtime.Notify("JobArchived", owner, cid, released)
}

// ClaimJob records the node's participation claim for the current cycle.
// The node must hold the currently required stake and can claim each job
// at most once per cycle. The cycle argument protects against transactions
// persisted after a cycle boundary: it must equal the current cycle.
//
// Conflict detection compares the claimed job root and consensus root with
// the root pairs already recorded for the cycle. On the first mismatch in
// either root the cycle is frozen for invoicing and CycleSkipped is
// produced; the freeze is never lifted, even if later claims agree. The
// claim itself is recorded either way, so the conflicting evidence stays on
// the ledger.
//
// It produces JobClaimed notification, and CycleSkipped on a root conflict.
func ClaimJob(node interop.Hash160, cid []byte, cycle, nodeCount, nodeShare int, jobRoot, consensusRoot []byte) {
	common.CheckOwnerWitness(node)

	ctx := storage.GetContext()

	staked := contract.Call(registryContract(ctx), "isStakedNode",
		contract.ReadOnly, node).(bool)
	if !staked {
		panic(renderjobconst.ErrNotStaked)
	}

	jobID := crypto.Sha256(cid)
	mustGetActiveJob(ctx, jobID)

	current := currentCycle(ctx)
	if cycle != current {
		panic(renderjobconst.ErrWrongCycle)
	}

	cc := getCycleClaims(ctx, jobID, cycle)

	conflict := false
	for i := 0; i < len(cc.Claims); i++ {
		if cc.Claims[i].Node.Equals(node) {
			panic(renderjobconst.ErrAlreadyClaimed)
		}
		if !common.BytesEqual(cc.Claims[i].JobRoot, jobRoot) ||
			!common.BytesEqual(cc.Claims[i].ConsensusRoot, consensusRoot) {
			conflict = true
		}
	}

	cc.Claims = append(cc.Claims, Claim{
		Node:          node,
		NodeCount:     nodeCount,
		NodeShare:     nodeShare,
		JobRoot:       jobRoot,
		ConsensusRoot: consensusRoot,
	})

	if conflict && !cc.Skipped {
		cc.Skipped = true
		runtime.Notify("CycleSkipped", cid, cycle)
	}

	common.SetSerialized(ctx, claimsKey(jobID, cycle), cc)

	runtime.Notify("JobClaimed", node, cid, cycle, jobRoot)
}

// ClaimInvoice turns the node's claim of a finished cycle into a payable
// invoice. The node must still hold the currently required stake. The
// invoiced amount is debited from the job owner's registry balance into the
// holding pool and subtracted from the job escrow; the settlement delay
// starts ticking from this call.
//
// The job owner authorizes the invoice off-system by signing the byte
// concatenation of invoiceCID, the job ID (SHA-256 of the job CID), the
// owner account, the node account and the integer encodings of cycle, work
// and amount, in that order. The signature must verify against ownerKey and
// ownerKey must resolve to the job owner account.
//
// It produces InvoiceClaimed notification.
func ClaimInvoice(node interop.Hash160, invoiceCID, cid []byte, cycle, work, amount int, ownerKey interop.PublicKey, signature interop.Signature) {
	common.CheckOwnerWitness(node)

	if work <= 0 || amount <= 0 {
		panic(renderjobconst.ErrNonPositiveAmount)
	}
	if len(signature) != interop.SignatureLen {
		panic(renderjobconst.ErrInvalidSignature)
	}

	ctx := storage.GetContext()

	staked := contract.Call(registryContract(ctx), "isStakedNode",
		contract.ReadOnly, node).(bool)
	if !staked {
		panic(renderjobconst.ErrNotStaked)
	}

	jobID := crypto.Sha256(cid)
	job := mustGetJob(ctx, jobID)

	if cycle >= currentCycle(ctx) {
		panic(renderjobconst.ErrCycleNotOver)
	}

	nodeOperator := contract.Call(registryContract(ctx), "nodeOperator",
		contract.ReadOnly, node).(interop.Hash160)
	if job.Owner.Equals(nodeOperator) {
		panic(renderjobconst.ErrSelfInvoice)
	}

	cc := getCycleClaims(ctx, jobID, cycle)
	if cc.Skipped {
		panic(renderjobconst.ErrCycleSkipped)
	}

	idx := claimIndex(cc, node)
	if idx < 0 {
		panic(renderjobconst.ErrNoClaim)
	}
	if len(cc.Claims[idx].InvoiceCID) != 0 {
		panic(renderjobconst.ErrAlreadyInvoiced)
	}

	msg := invoiceFingerprint(invoiceCID, jobID, job.Owner, node, cycle, work, amount)
	if !crypto.VerifyWithECDsa(msg, ownerKey, signature, crypto.Secp256r1) {
		panic(renderjobconst.ErrSignatureMismatch)
	}
	if !job.Owner.Equals(contract.CreateStandardAccount(ownerKey)) {
		panic(renderjobconst.ErrSignatureMismatch)
	}

	if job.Escrow < amount {
		panic(renderjobconst.ErrInsufficientEscrow)
	}

	contract.Call(registryContract(ctx), "debit", contract.All,
		job.Owner, amount, common.EscrowTransferDetails(jobID))

	now := runtime.GetTime()
	cc.Claims[idx].InvoiceCID = invoiceCID
	cc.Claims[idx].Held = amount
	cc.Claims[idx].InvoicedWork = work
	cc.Claims[idx].InvoicedTime = now
	common.SetSerialized(ctx, claimsKey(jobID, cycle), cc)

	job.Escrow -= amount
	job.Held += amount
	job.InvoicedWork += work
	job.InvoicedCost += amount
	common.SetSerialized(ctx, jobKey(jobID), job)

	held := common.GetIntOrZero(ctx, totalHeldKey)
	storage.Put(ctx, totalHeldKey, held+amount)

	runtime.Log("invoice claimed")
	runtime.Notify("InvoiceClaimed", node, cid, invoiceCID, cycle, amount)
}

// ForceSettle pushes the held amount of the node's invoice into the node
// operator's registry balance. It is available once the settlement delay
// has elapsed since the invoice claim and works exactly once per invoice.
// Revoked invoices cannot be settled: their held amount stays in the pool
// until the parties resolve the dispute off-system.
//
// It produces InvoiceSettled notification.
func ForceSettle(node interop.Hash160, cid []byte, cycle int) {
	common.CheckOwnerWitness(node)

	ctx := storage.GetContext()
	jobID := crypto.Sha256(cid)
	job := mustGetJob(ctx, jobID)

	cc := getCycleClaims(ctx, jobID, cycle)
	idx := claimIndex(cc, node)
	if idx < 0 {
		panic(renderjobconst.ErrNoClaim)
	}

	claim := cc.Claims[idx]
	if len(claim.InvoiceCID) == 0 {
		panic(renderjobconst.ErrNoClaim)
	}
	if claim.Revoked {
		panic(renderjobconst.ErrRevoked)
	}
	if claim.Held == 0 {
		panic(renderjobconst.ErrAlreadySettled)
	}
	if runtime.GetTime() <= claim.InvoicedTime+settlementDelay(ctx) {
		panic(renderjobconst.ErrNotDue)
	}

	nodeOperator := contract.Call(registryContract(ctx), "nodeOperator",
		contract.ReadOnly, node).(interop.Hash160)

	amount := claim.Held
	contract.Call(registryContract(ctx), "credit", contract.All,
		nodeOperator, amount, common.SettlementTransferDetails(jobID))

	cc.Claims[idx].Held = 0
	common.SetSerialized(ctx, claimsKey(jobID, cycle), cc)

	job.Held -= amount
	common.SetSerialized(ctx, jobKey(jobID), job)

	held := common.GetIntOrZero(ctx, totalHeldKey)
	storage.Put(ctx, totalHeldKey, held-amount)

	runtime.Log("invoice settled")
	runtime.Notify("InvoiceSettled", node, cid, claim.InvoiceCID, cycle, amount)
}

// RevokeInvoice lets the job owner contest the node's invoice within the
// settlement delay. A revoked invoice can never be force-settled; the held
// amount stays in the pool, keeping both sides invested in resolving the
// dispute.
//
// It produces InvoiceRevoked notification.
func RevokeInvoice(owner interop.Hash160, cid []byte, cycle int, node interop.Hash160) {
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	jobID := crypto.Sha256(cid)
	job := mustGetJob(ctx, jobID)

	checkJobOwner(ctx, job, owner, jobID)

	cc := getCycleClaims(ctx, jobID, cycle)
	idx := claimIndex(cc, node)
	if idx < 0 {
		panic(renderjobconst.ErrNoClaim)
	}

	claim := cc.Claims[idx]
	if len(claim.InvoiceCID) == 0 {
		panic(renderjobconst.ErrNoClaim)
	}
	if claim.Revoked {
		panic(renderjobconst.ErrAlreadyRevoked)
	}
	if claim.Held == 0 {
		panic(renderjobconst.ErrAlreadySettled)
	}
	if runtime.GetTime() > claim.InvoicedTime+settlementDelay(ctx) {
		panic(renderjobconst.ErrRevokeWindowClosed)
	}

	cc.Claims[idx].Revoked = true
	common.SetSerialized(ctx, claimsKey(jobID, cycle), cc)

	runtime.Log("invoice revoked")
	runtime.Notify("InvoiceRevoked", owner, cid, claim.InvoiceCID, cycle, node)
}

// SettleLegacyInvoice pays an accepted legacy invoice out of the job
// escrow: the amount is debited from the job owner and immediately credited
// to the payee operator through the registry. It can be invoked only by
// the invoice contract, which performs its own acceptance bookkeeping.
func SettleLegacyInvoice(cid []byte, payee interop.Hash160, amount int) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	invoiceHash := storage.Get(ctx, invoiceContractKey).(interop.Hash160)
	if !caller.Equals(invoiceHash) {
		panic(renderjobconst.ErrLegacyOnly)
	}

	if amount <= 0 {
		panic(renderjobconst.ErrNonPositiveAmount)
	}

	jobID := crypto.Sha256(cid)
	job := mustGetActiveJob(ctx, jobID)

	if job.Escrow < amount {
		panic(renderjobconst.ErrInsufficientEscrow)
	}

	registry := registryContract(ctx)
	contract.Call(registry, "debit", contract.All,
		job.Owner, amount, common.EscrowTransferDetails(jobID))
	contract.Call(registry, "credit", contract.All,
		payee, amount, common.SettlementTransferDetails(jobID))

	job.Escrow -= amount
	job.InvoicedCost += amount
	common.SetSerialized(ctx, jobKey(jobID), job)
}

// IsJobOwner returns true if the job exists, is not archived and is owned
// by the operator, with ownership verified both through the job record and
// the owner's job index.
func IsJobOwner(operator interop.Hash160, cid []byte) bool {
	ctx := storage.GetReadOnlyContext()
	jobID := crypto.Sha256(cid)

	job, ok := getJob(ctx, jobID)
	if !ok || job.Archived {
		return false
	}
	if !job.Owner.Equals(operator) {
		return false
	}

	return storage.Get(ctx, ownerJobKey(operator, jobID)) != nil
}

// GetJob returns the job record by its CID. With the strict queries flag
// set, archived jobs are reported as unknown.
func GetJob(cid []byte) Job {
	ctx := storage.GetReadOnlyContext()
	return mustGetQueryableJob(ctx, crypto.Sha256(cid))
}

// JobsOf returns CIDs of all non-archived jobs owned by the operator.
func JobsOf(operator interop.Hash160) [][]byte {
	ctx := storage.GetReadOnlyContext()

	result := [][]byte{}
	it := storage.Find(ctx, ownerIndexPrefix(operator), storage.ValuesOnly)
	for iterator.Next(it) {
		cid := iterator.Value(it).([]byte)
		job, _ := getJob(ctx, crypto.Sha256(cid))
		if !job.Archived {
			result = append(result, cid)
		}
	}

	return result
}

// ActiveJobsOf returns the number of non-archived jobs owned by the
// operator.
func ActiveJobsOf(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return activeJobsOf(ctx, operator)
}

// ReservedOf returns the sum of escrow balances of all non-archived jobs
// owned by the operator. The registry treats this amount as a lien on the
// operator balance.
func ReservedOf(operator interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()

	reserved := 0
	it := storage.Find(ctx, ownerIndexPrefix(operator), storage.ValuesOnly)
	for iterator.Next(it) {
		cid := iterator.Value(it).([]byte)
		job, _ := getJob(ctx, crypto.Sha256(cid))
		if !job.Archived {
			reserved += job.Escrow
		}
	}

	return reserved
}

// ClaimsOf returns the claims recorded for the job within the cycle, in
// claim order.
func ClaimsOf(cid []byte, cycle int) []Claim {
	ctx := storage.GetReadOnlyContext()
	jobID := crypto.Sha256(cid)
	mustGetQueryableJob(ctx, jobID)

	return getCycleClaims(ctx, jobID, cycle).Claims
}

// IsSkipped returns true if invoicing of the cycle is frozen by conflicting
// claims.
func IsSkipped(cid []byte, cycle int) bool {
	ctx := storage.GetReadOnlyContext()
	jobID := crypto.Sha256(cid)
	mustGetQueryableJob(ctx, jobID)

	return getCycleClaims(ctx, jobID, cycle).Skipped
}

// TotalHeld returns the aggregate amount held for settlement across all
// jobs. It mirrors the registry's held funds pool.
func TotalHeld() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, totalHeldKey)
}

// CurrentCycle returns the index of the hive cycle the current block falls
// into. A partially elapsed cycle counts as a whole one.
func CurrentCycle() int {
	ctx := storage.GetReadOnlyContext()
	return currentCycle(ctx)
}

// TimeSinceEpoch returns the number of milliseconds passed since the
// configured epoch start.
func TimeSinceEpoch() int {
	ctx := storage.GetReadOnlyContext()
	return common.TimeSinceEpoch(runtime.GetTime(), getConfig(ctx, renderjobconst.EpochStartKey).(int))
}

// EpochStart returns the configured epoch start as a unix timestamp in
// milliseconds.
func EpochStart() int {
	ctx := storage.GetReadOnlyContext()
	return getConfig(ctx, renderjobconst.EpochStartKey).(int)
}

// Config returns the configuration value of the specified key.
func Config(key []byte) any {
	ctx := storage.GetReadOnlyContext()
	return getConfig(ctx, key)
}

// SetConfig key/value pair. It can be invoked only by committee.
func SetConfig(key []byte, val any) {
	if !runtime.CheckWitness(common.CommitteeAddress()) {
		panic("only committee can set config")
	}

	ctx := storage.GetContext()
	setConfig(ctx, key, val)

	runtime.Log("config has been updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func jobKey(jobID interop.Hash256) []byte {
	return append([]byte{jobPrefix}, jobID...)
}

func ownerIndexPrefix(owner interop.Hash160) []byte {
	return append([]byte{ownerJobPrefix}, owner...)
}

func ownerJobKey(owner interop.Hash160, jobID interop.Hash256) []byte {
	return append(ownerIndexPrefix(owner), jobID...)
}

func claimsKey(jobID interop.Hash256, cycle int) []byte {
	return append(append([]byte{claimsPrefix}, jobID...), convert.ToBytes(cycle)...)
}

func getJob(ctx storage.Context, jobID interop.Hash256) (Job, bool) {
	data := storage.Get(ctx, jobKey(jobID))
	if data == nil {
		return Job{}, false
	}

	return std.Deserialize(data.([]byte)).(Job), true
}

func mustGetJob(ctx storage.Context, jobID interop.Hash256) Job {
	job, ok := getJob(ctx, jobID)
	if !ok {
		panic(renderjobconst.ErrUnknownJob)
	}

	return job
}

func mustGetActiveJob(ctx storage.Context, jobID interop.Hash256) Job {
	job := mustGetJob(ctx, jobID)
	if job.Archived {
		panic(renderjobconst.ErrJobArchived)
	}

	return job
}

func mustGetQueryableJob(ctx storage.Context, jobID interop.Hash256) Job {
	job, ok := getJob(ctx, jobID)
	if !ok {
		panic(renderjobconst.ErrUnknownJob)
	}
	if job.Archived && strictQueries(ctx) {
		panic(renderjobconst.ErrUnknownJob)
	}

	return job
}

// checkJobOwner verifies both ownership references: the owner recorded in
// the job and the job's presence in the operator's index.
func checkJobOwner(ctx storage.Context, job Job, operator interop.Hash160, jobID interop.Hash256) {
	if !job.Owner.Equals(operator) {
		panic(renderjobconst.ErrNotJobOwner)
	}
	if storage.Get(ctx, ownerJobKey(operator, jobID)) == nil {
		panic(renderjobconst.ErrNotJobOwner)
	}
}

func getCycleClaims(ctx storage.Context, jobID interop.Hash256, cycle int) CycleClaims {
	data := storage.Get(ctx, claimsKey(jobID, cycle))
	if data == nil {
		return CycleClaims{Claims: []Claim{}}
	}

	return std.Deserialize(data.([]byte)).(CycleClaims)
}

func claimIndex(cc CycleClaims, node interop.Hash160) int {
	for i := 0; i < len(cc.Claims); i++ {
		if cc.Claims[i].Node.Equals(node) {
			return i
		}
	}

	return -1
}

func invoiceFingerprint(invoiceCID []byte, jobID interop.Hash256, owner, node interop.Hash160, cycle, work, amount int) []byte {
	msg := append([]byte{}, invoiceCID...)
	msg = append(msg, jobID...)
	msg = append(msg, owner...)
	msg = append(msg, node...)
	msg = append(msg, convert.ToBytes(cycle)...)
	msg = append(msg, convert.ToBytes(work)...)
	msg = append(msg, convert.ToBytes(amount)...)

	return msg
}

func activeJobsOf(ctx storage.Context, operator interop.Hash160) int {
	count := 0
	it := storage.Find(ctx, ownerIndexPrefix(operator), storage.ValuesOnly)
	for iterator.Next(it) {
		cid := iterator.Value(it).([]byte)
		job, _ := getJob(ctx, crypto.Sha256(cid))
		if !job.Archived {
			count++
		}
	}

	return count
}

func currentCycle(ctx storage.Context) int {
	duration := getConfig(ctx, renderjobconst.CycleDurationKey).(int)
	epochStart := getConfig(ctx, renderjobconst.EpochStartKey).(int)

	return common.CurrentCycle(runtime.GetTime(), epochStart, duration)
}

func settlementDelay(ctx storage.Context) int {
	val := getConfig(ctx, renderjobconst.SettlementDelayKey)
	if val == nil {
		return renderjobconst.SettlementDelay
	}

	return val.(int)
}

func strictQueries(ctx storage.Context) bool {
	val := getConfig(ctx, renderjobconst.StrictQueriesKey)
	if val == nil {
		return false
	}

	return val.(int) != 0
}

func registryContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, registryContractKey).(interop.Hash160)
}

func getConfig(ctx storage.Context, key any) any {
	postfix := convert.ToBytes(key)
	storageKey := append(configPrefix, postfix...)

	return storage.Get(ctx, storageKey)
}

func setConfig(ctx storage.Context, key, val any) {
	postfix := convert.ToBytes(key)
	storageKey := append(configPrefix, postfix...)

	storage.Put(ctx, storageKey, val)
}
