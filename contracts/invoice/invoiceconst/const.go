package invoiceconst

// Invoice states. An invoice starts in StateRequested and ends in exactly
// one of the settled states.
const (
	// StateRequested is the initial state of an invoice awaiting the job
	// owner's verdict.
	StateRequested = 1
	// StateAccepted marks an invoice paid out on first submission.
	StateAccepted = 2
	// StateAcceptedAfterRerender marks a paid invoice that re-rendered a
	// previously declined one.
	StateAcceptedAfterRerender = 3
	// StateDeclined marks a rejected invoice. The decline reason is kept
	// alongside.
	StateDeclined = 4
)

// Decline reasons.
const (
	// ReasonInvalidNode : the invoicing node did not render the job.
	ReasonInvalidNode = 1
	// ReasonInvalidWork : the declared work units do not match the render.
	ReasonInvalidWork = 2
	// ReasonInvalidCosts : the declared cost does not match the declared
	// work.
	ReasonInvalidCosts = 3
	// ReasonInvalidRenderResult : the render output is wrong. This is the
	// only reason that entitles the node to a re-render.
	ReasonInvalidRenderResult = 4
)

// Per-item result codes of the batch accept and decline operations. The
// batch call itself always succeeds; failed items report why they were
// left untouched.
const (
	// SettleOK : the invoice was settled.
	SettleOK = 0
	// CodeUnknownInvoice : no invoice with such CID.
	CodeUnknownInvoice = 1
	// CodeUnknownJob : the referenced job is missing, archived or not
	// owned by the caller.
	CodeUnknownJob = 2
	// CodeAlreadySettled : the invoice has left the requested state
	// before.
	CodeAlreadySettled = 3
	// CodeInsufficientEscrow : the job escrow does not cover the invoice
	// cost.
	CodeInsufficientEscrow = 4
	// CodeBadReason : the decline reason is out of range.
	CodeBadReason = 5
)

const (
	// ErrUnknownInvoice is thrown when the referenced invoice is missing.
	ErrUnknownInvoice = "invoice does not exist"
	// ErrInvoiceExists is thrown on an attempt to reuse an invoice CID.
	ErrInvoiceExists = "invoice already exists"
	// ErrNotDeclinedResult is thrown when the re-rendered invoice is not
	// declined for an invalid render result.
	ErrNotDeclinedResult = "previous invoice is not declined for render result"
	// ErrRerenderExists is thrown when the declined invoice already has a
	// re-render successor.
	ErrRerenderExists = "declined invoice already has a re-render"
	// ErrNonPositiveAmount is thrown on zero or negative amounts of work
	// or funds.
	ErrNonPositiveAmount = "amount must be positive"
	// ErrNotStaked is thrown when the invoicing node does not hold the
	// currently required stake.
	ErrNotStaked = "node does not hold sufficient stake"
	// ErrBatchMismatch is thrown when the batch arguments differ in
	// length.
	ErrBatchMismatch = "batch arguments differ in length"
)
