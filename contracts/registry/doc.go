/*
Package registry implements Registry contract which is a part of the Hivemesh
marketplace. The contract keeps the account ledger of the marketplace: operator
records, their worker node records and the GAS custody backing operator
balances and node stakes.

Operators register themselves, deposit GAS via plain NEP-17 transfers to the
contract and withdraw the part of the balance not reserved as render job
escrow. Nodes are added by their owning operator together with a stake payment
covering a fixed fiat requirement; the rate oracle converts the requirement
into native units at call time, so a node can become unstaked by exchange rate
movement alone.

Fund movements between operator balances and the claim holding pool are
performed with Debit and Credit, invoked exclusively by the RenderJob and
Invoice contracts.

# Contract notifications

OperatorRegistered notification. Produced on operator registration:

	OperatorRegistered:
	  - name: operator
	    type: Hash160
	  - name: topic
	    type: ByteArray
	  - name: registered
	    type: Integer

OperatorUnregistered notification. Produced when an operator is archived with
the refunded amount:

	OperatorUnregistered:
	  - name: operator
	    type: Hash160
	  - name: refund
	    type: Integer

Deposit notification. Produced on accepted GAS deposit:

	Deposit:
	  - name: from
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrawal notification. Produced on balance withdrawal:

	Withdrawal:
	  - name: operator
	    type: Hash160
	  - name: amount
	    type: Integer

NodeAdded notification. Produced on node registration with its initial stake:

	NodeAdded:
	  - name: operator
	    type: Hash160
	  - name: node
	    type: Hash160
	  - name: stake
	    type: Integer

NodeRemoved notification. Produced on node removal with the released stake:

	NodeRemoved:
	  - name: operator
	    type: Hash160
	  - name: node
	    type: Hash160
	  - name: stake
	    type: Integer

StakeDeposit notification. Produced on stake top-up:

	StakeDeposit:
	  - name: operator
	    type: Hash160
	  - name: node
	    type: Hash160
	  - name: amount
	    type: Integer

StakeWithdrawal notification. Produced on stake drain:

	StakeWithdrawal:
	  - name: operator
	    type: Hash160
	  - name: node
	    type: Hash160
	  - name: amount
	    type: Integer

Transfer notification. Produced on Debit (empty receiver) and Credit (empty
sender):

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray
*/
package registry
