package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/hivemesh/hivemesh-contract/tests/dump"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	registryHash := flag.String("registry", "", "Address of the Registry contract, LE hex")
	renderJobHash := flag.String("renderjob", "", "Address of the RenderJob contract, LE hex")
	invoiceHash := flag.String("invoice", "", "Address of the Invoice contract, LE hex")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	}

	contracts := make(map[string]util.Uint160, 3)
	for name, arg := range map[string]*string{
		"registry":  registryHash,
		"renderjob": renderJobHash,
		"invoice":   invoiceHash,
	} {
		if *arg == "" {
			log.Fatalf("missing '%s' contract address", name)
		}

		h, err := util.Uint160DecodeStringLE(*arg)
		if err != nil {
			log.Fatal(fmt.Errorf("decode '%s' contract address: %w", name, err))
		}

		contracts[name] = h
	}

	const rootDir = "testdata"

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, rootDir, *chainLabel, contracts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Hivemesh contracts are successfully dumped to '%s/'\n", rootDir)
}

func _dump(neoBlockchainRPCEndpoint, rootDir, label string, contracts map[string]util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	d, err := dump.NewCreator(rootDir, dump.ID{
		Label: label,
		Block: b.currentBlock,
	})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	for name, h := range contracts {
		log.Printf("Processing contract '%s'...\n", name)

		ctr, err := b.rpc.GetContractStateByHash(h)
		if err != nil {
			return fmt.Errorf("get '%s' contract state: %w", name, err)
		}

		w := d.AddContract(name, *ctr)

		err = b.iterateContractStorage(h, w.Write)
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", name, err)
		}
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	return nil
}
