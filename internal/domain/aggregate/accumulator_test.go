package aggregate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

type update struct {
	key     string
	weight  int64
	matched bool
}

func TestAccumulatorSeedsDomain(t *testing.T) {
	acc := NewAccumulator([]string{"2", "3", "4"})

	assert.Equal(t, 3, acc.Len())
	assert.Equal(t, []string{"2", "3", "4"}, acc.Keys())
	assert.Equal(t, Bucket{}, acc.Bucket("3"))
}

func TestAccumulatorAdd(t *testing.T) {
	acc := NewAccumulator([]string{"2"})

	require.NoError(t, acc.Add("2", 10, true))
	require.NoError(t, acc.Add("2", 5, false))

	assert.Equal(t, Bucket{Total: 15, Matched: 10}, acc.Bucket("2"))
}

func TestAccumulatorRejects(t *testing.T) {
	acc := NewAccumulator([]string{"2"})

	err := acc.Add("99", 1, true)
	assert.True(t, errors.Is(err, types.ErrUnknownKey))

	err = acc.Add("2", -1, false)
	assert.True(t, errors.Is(err, types.ErrMalformedNumeric))

	assert.Equal(t, Bucket{}, acc.Bucket("2"))
	assert.False(t, acc.Has("99"))
}

func TestGrowingAccumulatorKeepsFirstSeenOrder(t *testing.T) {
	acc := NewGrowingAccumulator[int]()

	require.NoError(t, acc.Add(2024, 1, false))
	require.NoError(t, acc.Add(2023, 1, true))
	require.NoError(t, acc.Add(2024, 2, true))

	assert.Equal(t, []int{2024, 2023}, acc.Keys())
	assert.Equal(t, Bucket{Total: 3, Matched: 2}, acc.Bucket(2024))
	assert.Equal(t, Bucket{Total: 4, Matched: 3}, acc.Sum())
}

func TestAccumulatorOrderIndependent(t *testing.T) {
	domain := []string{"2", "3", "4", "5"}
	var updates []update
	for i := 0; i < 200; i++ {
		updates = append(updates, update{
			key:     domain[i%len(domain)],
			weight:  int64(i*7%31 + 1),
			matched: i%3 == 0,
		})
	}

	run := func(us []update) *Accumulator[string] {
		acc := NewAccumulator(domain)
		for _, u := range us {
			require.NoError(t, acc.Add(u.key, u.weight, u.matched))
		}
		return acc
	}

	want := run(updates)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := append([]update(nil), updates...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := run(shuffled)
		for _, k := range domain {
			assert.Equal(t, want.Bucket(k), got.Bucket(k), "key %s", k)
			assert.LessOrEqual(t, got.Bucket(k).Matched, got.Bucket(k).Total)
		}
	}
}
