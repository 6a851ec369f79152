package dump

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// Reader provides access to a single dump written by Creator.
type Reader struct {
	contracts []namedContract

	// storage items grouped by contract name
	storage map[string][][2][]byte
}

// Open reads the dump with the given ID from dir.
func Open(dir string, id ID) (*Reader, error) {
	statesData, err := os.ReadFile(statesPath(dir, id))
	if err != nil {
		return nil, fmt.Errorf("read contract states file: %w", err)
	}

	var res Reader

	err = json.Unmarshal(statesData, &res.contracts)
	if err != nil {
		return nil, fmt.Errorf("decode contract states from JSON: %w", err)
	}

	storageFile, err := os.Open(storagePath(dir, id))
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	defer storageFile.Close()

	res.storage = make(map[string][][2][]byte)

	r := csv.NewReader(storageFile)
	r.FieldsPerRecord = 3

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}

		key, err := base64.StdEncoding.DecodeString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("decode storage key from base64: %w", err)
		}

		value, err := base64.StdEncoding.DecodeString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("decode storage value from base64: %w", err)
		}

		res.storage[rec[0]] = append(res.storage[rec[0]], [2][]byte{key, value})
	}

	return &res, nil
}

// Contract returns the state of the named contract and a flag whether the
// dump contains it.
func (x *Reader) Contract(name string) (state.Contract, bool) {
	for i := range x.contracts {
		if x.contracts[i].Name == name {
			return x.contracts[i].State, true
		}
	}

	return state.Contract{}, false
}

// IterateStorage passes all storage items of the named contract into f in
// the dumped order. It breaks on the first f error and returns it.
func (x *Reader) IterateStorage(name string, f func(key, value []byte) error) error {
	for _, kv := range x.storage[name] {
		err := f(kv[0], kv[1])
		if err != nil {
			return err
		}
	}

	return nil
}

// IterateDumps opens every dump found in the specified directory and passes
// its ID and Reader into f.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, e error) error {
		if errors.Is(e, fs.ErrNotExist) {
			return nil
		}
		if e != nil {
			return e
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), statesSuffix) {
			return nil
		}

		id, err := parseID(d.Name())
		if err != nil {
			return fmt.Errorf("decode dump ID from file name '%s': %w", d.Name(), err)
		}

		r, err := Open(dir, id)
		if err != nil {
			return fmt.Errorf("open dump '%s': %w", id, err)
		}

		f(id, r)

		return nil
	})
}
