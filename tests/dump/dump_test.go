package dump

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/stretchr/testify/require"
)

func TestCreateAndRead(t *testing.T) {
	dir := t.TempDir()
	id := ID{Label: "unittest", Block: 42}

	c, err := NewCreator(dir, id)
	require.NoError(t, err)

	w := c.AddContract("registry", state.Contract{ContractBase: state.ContractBase{ID: 1}})
	require.NoError(t, w.Write([]byte{'o', 1, 2}, []byte("operator")))
	require.NoError(t, w.Write([]byte{'n', 3, 4}, []byte("node")))

	w = c.AddContract("renderjob", state.Contract{ContractBase: state.ContractBase{ID: 2}})
	require.NoError(t, w.Write([]byte{'j', 5}, []byte("job")))

	require.NoError(t, c.Flush())
	c.Close()

	// repeated creation of the same dump must fail
	_, err = NewCreator(dir, id)
	require.Error(t, err)

	var visited []ID
	err = IterateDumps(dir, func(gotID ID, r *Reader) {
		visited = append(visited, gotID)

		st, ok := r.Contract("registry")
		require.True(t, ok)
		require.EqualValues(t, 1, st.ID)

		_, ok = r.Contract("invoice")
		require.False(t, ok)

		var items int
		require.NoError(t, r.IterateStorage("registry", func(key, value []byte) error {
			items++
			return nil
		}))
		require.Equal(t, 2, items)

		require.NoError(t, r.IterateStorage("renderjob", func(key, value []byte) error {
			require.Equal(t, []byte{'j', 5}, key)
			require.Equal(t, []byte("job"), value)
			return nil
		}))
	})
	require.NoError(t, err)
	require.Equal(t, []ID{id}, visited)
}
