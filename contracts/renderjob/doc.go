/*
Package renderjob implements RenderJob contract which is a part of the
Hivemesh marketplace. The contract keeps render orders, the per-cycle claim
record of the worker nodes and the invoice settlement engine.

Time is split into hive cycles of a fixed configured duration counted from
the epoch start. Within the current cycle participating nodes claim the jobs
they render, publishing their result roots; a root conflict freezes the
cycle for invoicing and the freeze is never lifted. Once a cycle is over, a
node turns its claim into an invoice authorized by the job owner's
signature. The invoiced amount leaves the job escrow into a holding pool
and, after the settlement delay, the node forces it into its operator's
balance. Within the same delay the job owner can revoke a contested
invoice, which pins the held amount in the pool.

Escrow is a lien, not a transfer: job funds stay on the owner's registry
balance and are only excluded from its withdrawable part. Actual fund moves
go through the registry's debit and credit hooks.

# Contract configuration

  - CycleDuration: hive cycle duration in milliseconds
  - EpochStart: epoch start, unix timestamp in milliseconds
  - StrictQueries: non-zero value makes read-only queries fail for archived
    entities across the marketplace contracts

# Contract notifications

JobAdded notification. Produced on job submission:

	JobAdded:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: escrow
	    type: Integer
	  - name: estimatedWork
	    type: Integer
	  - name: estimatedCost
	    type: Integer

JobFunded notification. Produced on escrow top-up:

	JobFunded:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: amount
	    type: Integer

JobArchived notification. Produced on job archival with the released escrow:

	JobArchived:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: released
	    type: Integer

JobClaimed notification. Produced on every recorded claim:

	JobClaimed:
	  - name: node
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: cycle
	    type: Integer
	  - name: jobRoot
	    type: ByteArray

CycleSkipped notification. Produced once per cycle on the first root
conflict:

	CycleSkipped:
	  - name: cid
	    type: ByteArray
	  - name: cycle
	    type: Integer

InvoiceClaimed notification. Produced when a claim is invoiced:

	InvoiceClaimed:
	  - name: node
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: invoiceCID
	    type: ByteArray
	  - name: cycle
	    type: Integer
	  - name: amount
	    type: Integer

InvoiceSettled notification. Produced on forced settlement:

	InvoiceSettled:
	  - name: node
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: invoiceCID
	    type: ByteArray
	  - name: cycle
	    type: Integer
	  - name: amount
	    type: Integer

InvoiceRevoked notification. Produced on invoice revocation by the job
owner:

	InvoiceRevoked:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: invoiceCID
	    type: ByteArray
	  - name: cycle
	    type: Integer
	  - name: node
	    type: Hash160
*/
package renderjob
