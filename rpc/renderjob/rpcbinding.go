// Package renderjob contains RPC wrappers for Hivemesh RenderJob contract.
package renderjob

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// RenderjobClaim is a contract-specific renderjob.Claim type used by its methods.
type RenderjobClaim struct {
	Node util.Uint160
	NodeCount *big.Int
	NodeShare *big.Int
	JobRoot []byte
	ConsensusRoot []byte
	InvoiceCID []byte
	Held *big.Int
	InvoicedWork *big.Int
	InvoicedTime *big.Int
	Revoked bool
}

// RenderjobJob is a contract-specific renderjob.Job type used by its methods.
type RenderjobJob struct {
	CID []byte
	Owner util.Uint160
	Escrow *big.Int
	EstimatedWork *big.Int
	EstimatedCost *big.Int
	Submitted *big.Int
	InvoicedWork *big.Int
	InvoicedCost *big.Int
	Held *big.Int
	Archived bool
}

// JobAddedEvent represents "JobAdded" event emitted by the contract.
type JobAddedEvent struct {
	Owner util.Uint160
	Cid []byte
	Escrow *big.Int
	EstimatedWork *big.Int
	EstimatedCost *big.Int
}

// JobFundedEvent represents "JobFunded" event emitted by the contract.
type JobFundedEvent struct {
	Owner util.Uint160
	Cid []byte
	Amount *big.Int
}

// JobArchivedEvent represents "JobArchived" event emitted by the contract.
type JobArchivedEvent struct {
	Owner util.Uint160
	Cid []byte
	Released *big.Int
}

// JobClaimedEvent represents "JobClaimed" event emitted by the contract.
type JobClaimedEvent struct {
	Node util.Uint160
	Cid []byte
	Cycle *big.Int
	JobRoot []byte
}

// CycleSkippedEvent represents "CycleSkipped" event emitted by the contract.
type CycleSkippedEvent struct {
	Cid []byte
	Cycle *big.Int
}

// InvoiceClaimedEvent represents "InvoiceClaimed" event emitted by the contract.
type InvoiceClaimedEvent struct {
	Node util.Uint160
	Cid []byte
	InvoiceCID []byte
	Cycle *big.Int
	Amount *big.Int
}

// InvoiceSettledEvent represents "InvoiceSettled" event emitted by the contract.
type InvoiceSettledEvent struct {
	Node util.Uint160
	Cid []byte
	InvoiceCID []byte
	Cycle *big.Int
	Amount *big.Int
}

// InvoiceRevokedEvent represents "InvoiceRevoked" event emitted by the contract.
type InvoiceRevokedEvent struct {
	Owner util.Uint160
	Cid []byte
	InvoiceCID []byte
	Cycle *big.Int
	Node util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ActiveJobsOf invokes `activeJobsOf` method of contract.
func (c *ContractReader) ActiveJobsOf(operator util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "activeJobsOf", operator))
}

// ClaimsOf invokes `claimsOf` method of contract.
func (c *ContractReader) ClaimsOf(cid []byte, cycle *big.Int) ([]*RenderjobClaim, error) {
	return func (item stackitem.Item, err error) ([]*RenderjobClaim, error) {
		if err != nil {
			return nil, err
		}
		items, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*RenderjobClaim, len(items))
		for i := range items {
			res[i], err = itemToRenderjobClaim(items[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (unwrap.Item(c.invoker.Call(c.hash, "claimsOf", cid, cycle)))
}

// Config invokes `config` method of contract.
func (c *ContractReader) Config(key []byte) (stackitem.Item, error) {
	return unwrap.Item(c.invoker.Call(c.hash, "config", key))
}

// CurrentCycle invokes `currentCycle` method of contract.
func (c *ContractReader) CurrentCycle() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "currentCycle"))
}

// EpochStart invokes `epochStart` method of contract.
func (c *ContractReader) EpochStart() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "epochStart"))
}

// GetJob invokes `getJob` method of contract.
func (c *ContractReader) GetJob(cid []byte) (*RenderjobJob, error) {
	return itemToRenderjobJob(unwrap.Item(c.invoker.Call(c.hash, "getJob", cid)))
}

// IsJobOwner invokes `isJobOwner` method of contract.
func (c *ContractReader) IsJobOwner(operator util.Uint160, cid []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isJobOwner", operator, cid))
}

// IsSkipped invokes `isSkipped` method of contract.
func (c *ContractReader) IsSkipped(cid []byte, cycle *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isSkipped", cid, cycle))
}

// JobsOf invokes `jobsOf` method of contract.
func (c *ContractReader) JobsOf(operator util.Uint160) ([][]byte, error) {
	return unwrap.ArrayOfBytes(c.invoker.Call(c.hash, "jobsOf", operator))
}

// ReservedOf invokes `reservedOf` method of contract.
func (c *ContractReader) ReservedOf(operator util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "reservedOf", operator))
}

// TimeSinceEpoch invokes `timeSinceEpoch` method of contract.
func (c *ContractReader) TimeSinceEpoch() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "timeSinceEpoch"))
}

// TotalHeld invokes `totalHeld` method of contract.
func (c *ContractReader) TotalHeld() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalHeld"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddJob creates a transaction invoking `addJob` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddJob(owner util.Uint160, cid []byte, escrow *big.Int, estimatedWork *big.Int, estimatedCost *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addJob", owner, cid, escrow, estimatedWork, estimatedCost)
}

// AddJobTransaction creates a transaction invoking `addJob` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddJobTransaction(owner util.Uint160, cid []byte, escrow *big.Int, estimatedWork *big.Int, estimatedCost *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addJob", owner, cid, escrow, estimatedWork, estimatedCost)
}

// AddJobUnsigned creates a transaction invoking `addJob` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddJobUnsigned(owner util.Uint160, cid []byte, escrow *big.Int, estimatedWork *big.Int, estimatedCost *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addJob", nil, owner, cid, escrow, estimatedWork, estimatedCost)
}

// ArchiveJob creates a transaction invoking `archiveJob` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ArchiveJob(owner util.Uint160, cid []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "archiveJob", owner, cid)
}

// ArchiveJobTransaction creates a transaction invoking `archiveJob` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ArchiveJobTransaction(owner util.Uint160, cid []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "archiveJob", owner, cid)
}

// ArchiveJobUnsigned creates a transaction invoking `archiveJob` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ArchiveJobUnsigned(owner util.Uint160, cid []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "archiveJob", nil, owner, cid)
}

// ClaimInvoice creates a transaction invoking `claimInvoice` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimInvoice(node util.Uint160, invoiceCID []byte, cid []byte, cycle *big.Int, work *big.Int, amount *big.Int, ownerKey *keys.PublicKey, signature []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimInvoice", node, invoiceCID, cid, cycle, work, amount, ownerKey, signature)
}

// ClaimInvoiceTransaction creates a transaction invoking `claimInvoice` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimInvoiceTransaction(node util.Uint160, invoiceCID []byte, cid []byte, cycle *big.Int, work *big.Int, amount *big.Int, ownerKey *keys.PublicKey, signature []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimInvoice", node, invoiceCID, cid, cycle, work, amount, ownerKey, signature)
}

// ClaimInvoiceUnsigned creates a transaction invoking `claimInvoice` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimInvoiceUnsigned(node util.Uint160, invoiceCID []byte, cid []byte, cycle *big.Int, work *big.Int, amount *big.Int, ownerKey *keys.PublicKey, signature []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimInvoice", nil, node, invoiceCID, cid, cycle, work, amount, ownerKey, signature)
}

// ClaimJob creates a transaction invoking `claimJob` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimJob(node util.Uint160, cid []byte, cycle *big.Int, nodeCount *big.Int, nodeShare *big.Int, jobRoot []byte, consensusRoot []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimJob", node, cid, cycle, nodeCount, nodeShare, jobRoot, consensusRoot)
}

// ClaimJobTransaction creates a transaction invoking `claimJob` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimJobTransaction(node util.Uint160, cid []byte, cycle *big.Int, nodeCount *big.Int, nodeShare *big.Int, jobRoot []byte, consensusRoot []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimJob", node, cid, cycle, nodeCount, nodeShare, jobRoot, consensusRoot)
}

// ClaimJobUnsigned creates a transaction invoking `claimJob` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimJobUnsigned(node util.Uint160, cid []byte, cycle *big.Int, nodeCount *big.Int, nodeShare *big.Int, jobRoot []byte, consensusRoot []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimJob", nil, node, cid, cycle, nodeCount, nodeShare, jobRoot, consensusRoot)
}

// ForceSettle creates a transaction invoking `forceSettle` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ForceSettle(node util.Uint160, cid []byte, cycle *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "forceSettle", node, cid, cycle)
}

// ForceSettleTransaction creates a transaction invoking `forceSettle` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ForceSettleTransaction(node util.Uint160, cid []byte, cycle *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "forceSettle", node, cid, cycle)
}

// ForceSettleUnsigned creates a transaction invoking `forceSettle` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ForceSettleUnsigned(node util.Uint160, cid []byte, cycle *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "forceSettle", nil, node, cid, cycle)
}

// RevokeInvoice creates a transaction invoking `revokeInvoice` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RevokeInvoice(owner util.Uint160, cid []byte, cycle *big.Int, node util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revokeInvoice", owner, cid, cycle, node)
}

// RevokeInvoiceTransaction creates a transaction invoking `revokeInvoice` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RevokeInvoiceTransaction(owner util.Uint160, cid []byte, cycle *big.Int, node util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revokeInvoice", owner, cid, cycle, node)
}

// RevokeInvoiceUnsigned creates a transaction invoking `revokeInvoice` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RevokeInvoiceUnsigned(owner util.Uint160, cid []byte, cycle *big.Int, node util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revokeInvoice", nil, owner, cid, cycle, node)
}

// SetConfig creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetConfig(key []byte, val any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setConfig", key, val)
}

// SetConfigTransaction creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetConfigTransaction(key []byte, val any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setConfig", key, val)
}

// SetConfigUnsigned creates a transaction invoking `setConfig` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetConfigUnsigned(key []byte, val any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setConfig", nil, key, val)
}

// SettleLegacyInvoice creates a transaction invoking `settleLegacyInvoice` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SettleLegacyInvoice(cid []byte, payee util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "settleLegacyInvoice", cid, payee, amount)
}

// SettleLegacyInvoiceTransaction creates a transaction invoking `settleLegacyInvoice` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SettleLegacyInvoiceTransaction(cid []byte, payee util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "settleLegacyInvoice", cid, payee, amount)
}

// SettleLegacyInvoiceUnsigned creates a transaction invoking `settleLegacyInvoice` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SettleLegacyInvoiceUnsigned(cid []byte, payee util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "settleLegacyInvoice", nil, cid, payee, amount)
}

// TopUpFunds creates a transaction invoking `topUpFunds` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TopUpFunds(owner util.Uint160, cid []byte, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "topUpFunds", owner, cid, amount)
}

// TopUpFundsTransaction creates a transaction invoking `topUpFunds` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TopUpFundsTransaction(owner util.Uint160, cid []byte, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "topUpFunds", owner, cid, amount)
}

// TopUpFundsUnsigned creates a transaction invoking `topUpFunds` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TopUpFundsUnsigned(owner util.Uint160, cid []byte, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "topUpFunds", nil, owner, cid, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToRenderjobClaim converts stack item into *RenderjobClaim.
func itemToRenderjobClaim(item stackitem.Item, err error) (*RenderjobClaim, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RenderjobClaim)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RenderjobClaim from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RenderjobClaim) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 10 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Node, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	index++
	res.NodeCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NodeCount: %w", err)
	}

	index++
	res.NodeShare, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NodeShare: %w", err)
	}

	index++
	res.JobRoot, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field JobRoot: %w", err)
	}

	index++
	res.ConsensusRoot, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field ConsensusRoot: %w", err)
	}

	index++
	res.InvoiceCID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field InvoiceCID: %w", err)
	}

	index++
	res.Held, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Held: %w", err)
	}

	index++
	res.InvoicedWork, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InvoicedWork: %w", err)
	}

	index++
	res.InvoicedTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InvoicedTime: %w", err)
	}

	index++
	res.Revoked, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Revoked: %w", err)
	}

	return nil
}

// itemToRenderjobJob converts stack item into *RenderjobJob.
func itemToRenderjobJob(item stackitem.Item, err error) (*RenderjobJob, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RenderjobJob)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RenderjobJob from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RenderjobJob) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 10 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.CID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field CID: %w", err)
	}

	index++
	res.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.Escrow, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Escrow: %w", err)
	}

	index++
	res.EstimatedWork, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EstimatedWork: %w", err)
	}

	index++
	res.EstimatedCost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EstimatedCost: %w", err)
	}

	index++
	res.Submitted, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Submitted: %w", err)
	}

	index++
	res.InvoicedWork, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InvoicedWork: %w", err)
	}

	index++
	res.InvoicedCost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InvoicedCost: %w", err)
	}

	index++
	res.Held, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Held: %w", err)
	}

	index++
	res.Archived, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Archived: %w", err)
	}

	return nil
}

// JobAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "JobAdded" name from the provided [result.ApplicationLog].
func JobAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*JobAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*JobAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "JobAdded" {
				continue
			}
			event := new(JobAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize JobAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to JobAddedEvent or
// returns an error if it's not possible to do to so.
func (e *JobAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Escrow, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Escrow: %w", err)
	}

	index++
	e.EstimatedWork, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EstimatedWork: %w", err)
	}

	index++
	e.EstimatedCost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EstimatedCost: %w", err)
	}

	return nil
}

// JobFundedEventsFromApplicationLog retrieves a set of all emitted events
// with "JobFunded" name from the provided [result.ApplicationLog].
func JobFundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*JobFundedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*JobFundedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "JobFunded" {
				continue
			}
			event := new(JobFundedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize JobFundedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to JobFundedEvent or
// returns an error if it's not possible to do to so.
func (e *JobFundedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// JobArchivedEventsFromApplicationLog retrieves a set of all emitted events
// with "JobArchived" name from the provided [result.ApplicationLog].
func JobArchivedEventsFromApplicationLog(log *result.ApplicationLog) ([]*JobArchivedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*JobArchivedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "JobArchived" {
				continue
			}
			event := new(JobArchivedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize JobArchivedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to JobArchivedEvent or
// returns an error if it's not possible to do to so.
func (e *JobArchivedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Released, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Released: %w", err)
	}

	return nil
}

// JobClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "JobClaimed" name from the provided [result.ApplicationLog].
func JobClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*JobClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*JobClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "JobClaimed" {
				continue
			}
			event := new(JobClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize JobClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to JobClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *JobClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Node, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Cycle, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cycle: %w", err)
	}

	index++
	e.JobRoot, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field JobRoot: %w", err)
	}

	return nil
}

// CycleSkippedEventsFromApplicationLog retrieves a set of all emitted events
// with "CycleSkipped" name from the provided [result.ApplicationLog].
func CycleSkippedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CycleSkippedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CycleSkippedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "CycleSkipped" {
				continue
			}
			event := new(CycleSkippedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CycleSkippedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CycleSkippedEvent or
// returns an error if it's not possible to do to so.
func (e *CycleSkippedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.Cycle, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cycle: %w", err)
	}

	return nil
}

// InvoiceClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "InvoiceClaimed" name from the provided [result.ApplicationLog].
func InvoiceClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*InvoiceClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*InvoiceClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "InvoiceClaimed" {
				continue
			}
			event := new(InvoiceClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize InvoiceClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to InvoiceClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *InvoiceClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Node, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.InvoiceCID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field InvoiceCID: %w", err)
	}

	index++
	e.Cycle, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cycle: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// InvoiceSettledEventsFromApplicationLog retrieves a set of all emitted events
// with "InvoiceSettled" name from the provided [result.ApplicationLog].
func InvoiceSettledEventsFromApplicationLog(log *result.ApplicationLog) ([]*InvoiceSettledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*InvoiceSettledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "InvoiceSettled" {
				continue
			}
			event := new(InvoiceSettledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize InvoiceSettledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to InvoiceSettledEvent or
// returns an error if it's not possible to do to so.
func (e *InvoiceSettledEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Node, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.InvoiceCID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field InvoiceCID: %w", err)
	}

	index++
	e.Cycle, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cycle: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// InvoiceRevokedEventsFromApplicationLog retrieves a set of all emitted events
// with "InvoiceRevoked" name from the provided [result.ApplicationLog].
func InvoiceRevokedEventsFromApplicationLog(log *result.ApplicationLog) ([]*InvoiceRevokedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*InvoiceRevokedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "InvoiceRevoked" {
				continue
			}
			event := new(InvoiceRevokedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize InvoiceRevokedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to InvoiceRevokedEvent or
// returns an error if it's not possible to do to so.
func (e *InvoiceRevokedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Cid, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Cid: %w", err)
	}

	index++
	e.InvoiceCID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field InvoiceCID: %w", err)
	}

	index++
	e.Cycle, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cycle: %w", err)
	}

	index++
	e.Node, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	return nil
}
