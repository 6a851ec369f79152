// Package deploy provides Hivemesh marketplace deployment procedure.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for marketplace deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// ContractPrm groups deployment parameters of a single marketplace contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the marketplace deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be
	// unlocked). The contract addresses are a function of this account,
	// so re-running the procedure with the same account is idempotent.
	LocalAccount *wallet.Account

	// Address of the exchange rate source queried for the node stake
	// requirement.
	RateOracle util.Uint160

	Registry  ContractPrm
	RenderJob ContractPrm
	Invoice   ContractPrm

	// Hive cycle duration, milliseconds.
	CycleDuration int64
	// Epoch start, unix timestamp in milliseconds. Zero picks the
	// deployment block time.
	EpochStart int64
}

// Contracts groups addresses of the deployed marketplace contracts.
type Contracts struct {
	Registry  util.Uint160
	RenderJob util.Uint160
	Invoice   util.Uint160
}

// Deploy initializes the Hivemesh marketplace on the Neo network represented
// by given Prm.Blockchain.
//
// The three contracts reference each other, so their addresses are
// calculated up front from the deployer account and passed as deployment
// arguments before any of them hits the chain. Contracts already present
// on the chain are left untouched, which makes the procedure safe to
// re-run after a partial failure.
func Deploy(ctx context.Context, prm Prm) (Contracts, error) {
	var res Contracts

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	sender := prm.LocalAccount.ScriptHash()
	res.Registry = state.CreateContractHash(sender, prm.Registry.NEF.Checksum, prm.Registry.Manifest.Name)
	res.RenderJob = state.CreateContractHash(sender, prm.RenderJob.NEF.Checksum, prm.RenderJob.Manifest.Name)
	res.Invoice = state.CreateContractHash(sender, prm.Invoice.NEF.Checksum, prm.Invoice.Manifest.Name)

	mgmt := management.New(localActor)

	// Dependent deployment arguments reference precalculated addresses, so
	// the order below is cosmetic.
	for _, c := range []struct {
		prm       ContractPrm
		address   util.Uint160
		deployArg []any
	}{
		{prm.Registry, res.Registry, []any{prm.RateOracle, res.RenderJob, res.Invoice}},
		{prm.RenderJob, res.RenderJob, []any{res.Registry, res.Invoice, prm.CycleDuration, prm.EpochStart}},
		{prm.Invoice, res.Invoice, []any{res.Registry, res.RenderJob}},
	} {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		alreadyOnChain, err := isDeployed(prm.Blockchain, c.address)
		if err != nil {
			return res, fmt.Errorf("check %s contract state: %w", c.prm.Manifest.Name, err)
		}
		if alreadyOnChain {
			prm.Logger.Info("contract is already on the chain, skipping",
				zap.String("name", c.prm.Manifest.Name), zap.Stringer("address", c.address))
			continue
		}

		prm.Logger.Info("deploying contract...",
			zap.String("name", c.prm.Manifest.Name), zap.Stringer("address", c.address))

		txHash, vub, err := mgmt.Deploy(&c.prm.NEF, &c.prm.Manifest, c.deployArg)
		if err != nil {
			return res, fmt.Errorf("deploy %s contract: %w", c.prm.Manifest.Name, err)
		}

		_, err = localActor.Wait(txHash, vub, nil)
		if err != nil {
			return res, fmt.Errorf("wait for %s contract deployment: %w", c.prm.Manifest.Name, err)
		}

		prm.Logger.Info("contract successfully deployed",
			zap.String("name", c.prm.Manifest.Name), zap.Stringer("address", c.address))
	}

	return res, nil
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	st, err := b.GetContractStateByHash(addr)
	if err != nil {
		if isErrContractNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return st != nil, nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
