package registryconst

const (
	// StakeFiatCents is the node guarantee requirement denominated in fiat
	// cents. The registry converts it into native units through the rate
	// oracle on every sufficiency check, so the native requirement floats
	// with the exchange rate.
	StakeFiatCents = 50_00

	// ErrAlreadyRegistered is thrown on an attempt to register an account
	// that already has an operator or node record, archived ones included.
	ErrAlreadyRegistered = "account is already registered"
	// ErrUnknownOperator is thrown when the referenced operator record is
	// missing or not available to the caller.
	ErrUnknownOperator = "operator does not exist"
	// ErrOperatorArchived is thrown when a mutating call references an
	// operator that has unregistered.
	ErrOperatorArchived = "operator is archived"
	// ErrUnknownNode is thrown when the referenced node record is missing.
	ErrUnknownNode = "node does not exist"
	// ErrNodeArchived is thrown when a mutating call references a removed
	// node.
	ErrNodeArchived = "node is archived"
	// ErrNotOwnedNode is thrown when the node's ownership checks against
	// the calling operator do not hold.
	ErrNotOwnedNode = "node is not owned by the operator"
	// ErrNonPositiveAmount is thrown on zero or negative fund amounts.
	ErrNonPositiveAmount = "amount must be positive"
	// ErrInsufficientBalance is thrown when the operator's balance minus
	// its reserved funds does not cover the requested amount.
	ErrInsufficientBalance = "insufficient balance"
	// ErrInsufficientStake is thrown when a stake payment is below the
	// current conversion of StakeFiatCents.
	ErrInsufficientStake = "insufficient stake"
	// ErrPendingJobs is thrown on unregistration while the operator still
	// owns non-archived render jobs.
	ErrPendingJobs = "operator has pending render jobs"
	// ErrSettlementOnly is thrown when an internal transfer hook is
	// invoked by anything but the settlement contracts.
	ErrSettlementOnly = "method must be invoked by the settlement contracts"
	// ErrTransferFailed is thrown when a GAS transfer returns false.
	ErrTransferFailed = "failed to transfer funds, aborting"
)
