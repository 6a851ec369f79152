/*
Package invoice implements Invoice contract which is a part of the Hivemesh
marketplace. The contract keeps the direct invoicing flow: nodes request
payment against a render job and the job owner settles the requests with an
explicit verdict, in batches.

An accepted invoice is paid out of the job escrow through the render job
contract's legacy settlement hook; a declined invoice moves no funds and
records one of the decline reasons. An invoice declined for an invalid
render result can be re-rendered exactly once, and accepting the re-render
marks it as such. The batch operations never fail as a whole: each input
CID yields a result code and failed items stay untouched.

# Contract notifications

InvoiceRequested notification. Produced on invoice request:

	InvoiceRequested:
	  - name: node
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: jobCID
	    type: ByteArray
	  - name: cost
	    type: Integer

InvoiceAccepted notification. Produced per settled invoice of a batch:

	InvoiceAccepted:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: node
	    type: Hash160
	  - name: cost
	    type: Integer

InvoiceDeclined notification. Produced per declined invoice of a batch:

	InvoiceDeclined:
	  - name: owner
	    type: Hash160
	  - name: cid
	    type: ByteArray
	  - name: node
	    type: Hash160
	  - name: reason
	    type: Integer
*/
package invoice
