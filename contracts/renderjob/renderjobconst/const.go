package renderjobconst

const (
	// CycleDurationKey is a key in the render job contract config which
	// contains the hive cycle duration in milliseconds.
	CycleDurationKey = "CycleDuration"
	// EpochStartKey is a key in the render job contract config which
	// contains the hive epoch start as a unix timestamp in milliseconds.
	EpochStartKey = "EpochStart"
	// StrictQueriesKey is a key in the render job contract config which,
	// when set to a non-zero value, makes read-only queries fail for
	// archived entities instead of answering from the historical record.
	StrictQueriesKey = "StrictQueries"

	// SettlementDelayKey is a key in the render job contract config which
	// overrides the default settlement time lock, in milliseconds.
	SettlementDelayKey = "SettlementDelay"

	// SettlementDelay is the default time lock between claiming an invoice
	// and the moment its held amount can be forced into the node operator's
	// balance. The same window bounds invoice revocation by the job owner.
	SettlementDelay = 24 * 60 * 60 * 1000

	// ShareDenominator is the total of all node work shares declared for
	// one job within one cycle, in parts per ten thousand.
	ShareDenominator = 10_000

	// ErrUnknownJob is thrown when the referenced render job is missing.
	ErrUnknownJob = "render job does not exist"
	// ErrJobExists is thrown on an attempt to reuse a job CID, archived
	// jobs included.
	ErrJobExists = "render job already exists"
	// ErrJobArchived is thrown when a mutating call references an archived
	// render job.
	ErrJobArchived = "render job is archived"
	// ErrNotJobOwner is thrown when the job ownership checks against the
	// calling operator do not hold.
	ErrNotJobOwner = "operator does not own the render job"
	// ErrNonPositiveAmount is thrown on zero or negative amounts of work
	// or funds.
	ErrNonPositiveAmount = "amount must be positive"
	// ErrNotStaked is thrown when the claiming node does not hold the
	// currently required stake.
	ErrNotStaked = "node does not hold sufficient stake"
	// ErrWrongCycle is thrown when a claim targets anything but the
	// current hive cycle.
	ErrWrongCycle = "claim must target the current cycle"
	// ErrCycleNotOver is thrown when an invoice is claimed for the current
	// or a future cycle.
	ErrCycleNotOver = "cycle is not over yet"
	// ErrAlreadyClaimed is thrown when a node claims the same job twice
	// within one cycle.
	ErrAlreadyClaimed = "job already claimed by this node in this cycle"
	// ErrCycleSkipped is thrown on invoice claims against a cycle frozen
	// by conflicting claims.
	ErrCycleSkipped = "cycle was skipped due to conflicting claims"
	// ErrNoClaim is thrown when no claim of the node exists for the
	// referenced job and cycle.
	ErrNoClaim = "no claim for this job and cycle"
	// ErrAlreadyInvoiced is thrown when a claim already carries an
	// invoice.
	ErrAlreadyInvoiced = "claim is already invoiced"
	// ErrInvalidSignature is thrown when the owner signature has a wrong
	// length.
	ErrInvalidSignature = "invalid signature"
	// ErrSignatureMismatch is thrown when the owner signature does not
	// verify against the invoice fingerprint.
	ErrSignatureMismatch = "signature does not match the job owner"
	// ErrInsufficientEscrow is thrown when the job escrow does not cover
	// the invoiced amount.
	ErrInsufficientEscrow = "insufficient job escrow"
	// ErrAlreadySettled is thrown on a repeated settlement of the same
	// claim.
	ErrAlreadySettled = "balance already transferred"
	// ErrNotDue is thrown when settlement is forced before the time lock
	// has elapsed.
	ErrNotDue = "settlement delay has not elapsed"
	// ErrRevoked is thrown on settlement of a revoked invoice.
	ErrRevoked = "invoice was revoked"
	// ErrAlreadyRevoked is thrown on a repeated revocation.
	ErrAlreadyRevoked = "invoice is already revoked"
	// ErrRevokeWindowClosed is thrown on revocation after the settlement
	// delay has elapsed.
	ErrRevokeWindowClosed = "revocation window is closed"
	// ErrHeldFunds is thrown on archiving a job that still has invoiced
	// amounts held for settlement.
	ErrHeldFunds = "job has funds held for settlement"
	// ErrSelfInvoice is thrown when the job owner and the claiming node
	// resolve to the same account.
	ErrSelfInvoice = "job owner cannot invoice itself"
	// ErrLegacyOnly is thrown when the legacy settlement hook is invoked
	// by anything but the invoice contract.
	ErrLegacyOnly = "method must be invoked by the invoice contract"
)
