// Package dump provides a file model for Hivemesh contract state dumps.
// One dump captures states and storages of the marketplace contracts pulled
// from a particular chain at a particular height:
//
//	'<label>-<block>-contracts.json': JSON array of named contract states
//	'<label>-<block>-storage.csv': CSV 'name,key,value' records with
//	base64-encoded binary columns
//
// Dumps of updatable contracts are collected from live networks and pinned
// in the repository, letting migration code be checked against real data.
package dump

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// ID identifies a dump by the chain it was pulled from and the pull height.
type ID struct {
	// Label of the dump source (e.g. testnet, mainnet).
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + "-" + strconv.FormatUint(uint64(x.Block), 10)
}

func parseID(s string) (ID, error) {
	var id ID

	ss := strings.SplitN(s, "-", 3)
	if len(ss) < 2 {
		return id, fmt.Errorf("expected at least 2 hyphen-separated items in '%s'", s)
	}

	n, err := strconv.ParseUint(ss[1], 10, 32)
	if err != nil {
		return id, fmt.Errorf("decode block number from '%s': %w", ss[1], err)
	}

	id.Label = ss[0]
	id.Block = uint32(n)

	return id, nil
}

const (
	statesSuffix  = "contracts.json"
	storageSuffix = "storage.csv"
)

func statesPath(dir string, id ID) string {
	return filepath.Join(dir, id.String()+"-"+statesSuffix)
}

func storagePath(dir string, id ID) string {
	return filepath.Join(dir, id.String()+"-"+storageSuffix)
}

type namedContract struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

// Creator assembles a new dump. Resulting Creator should be closed when
// finished working with it.
type Creator struct {
	statesFile, storageFile *os.File

	contracts  []namedContract
	storageCSV *csv.Writer
}

// NewCreator returns Creator writing the dump with the given ID into dir.
// NewCreator fails if either dump file already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	var (
		res   Creator
		err   error
		flags = os.O_CREATE | os.O_EXCL | os.O_WRONLY
	)

	res.statesFile, err = os.OpenFile(statesPath(dir, id), flags, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open contract states file: %w", err)
	}

	res.storageFile, err = os.OpenFile(storagePath(dir, id), flags, 0o600)
	if err != nil {
		_ = res.statesFile.Close()
		return nil, fmt.Errorf("open storage file: %w", err)
	}

	res.storageCSV = csv.NewWriter(res.storageFile)

	return &res, nil
}

// AddContract adds the named contract state to the dump and returns
// StorageWriter collecting the contract's storage items. After all needed
// contracts are added, the dump should be flushed via Flush method.
func (x *Creator) AddContract(name string, st state.Contract) *StorageWriter {
	x.contracts = append(x.contracts, namedContract{
		Name:  name,
		State: st,
	})

	return &StorageWriter{
		name: name,
		csv:  x.storageCSV,
	}
}

// Flush writes the accumulated dump to the file system.
func (x *Creator) Flush() error {
	enc := json.NewEncoder(x.statesFile)
	enc.SetIndent("", " ")

	err := enc.Encode(x.contracts)
	if err != nil {
		return fmt.Errorf("encode contract states to JSON: %w", err)
	}

	x.storageCSV.Flush()

	err = x.storageCSV.Error()
	if err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	return nil
}

// Close releases the underlying files. The dump is complete only if Flush
// succeeded before.
func (x *Creator) Close() {
	_ = x.storageFile.Close()
	_ = x.statesFile.Close()
}

// StorageWriter collects storage items of a single dumped contract.
type StorageWriter struct {
	name string
	csv  *csv.Writer
}

// Write appends one binary key-value pair of the contract storage.
func (x *StorageWriter) Write(key, value []byte) error {
	err := x.csv.Write([]string{
		x.name,
		base64.StdEncoding.EncodeToString(key),
		base64.StdEncoding.EncodeToString(value),
	})
	if err != nil {
		return fmt.Errorf("write CSV record: %w", err)
	}

	return nil
}
