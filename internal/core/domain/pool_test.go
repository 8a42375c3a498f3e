package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseAsset = strings.Repeat("00", 32)
	testAsset = strings.Repeat("aa", 32)
)

func TestNewPool(t *testing.T) {
	pool, err := NewPool(baseAsset, testAsset, 25)
	require.NoError(t, err)
	require.NotNil(t, pool)

	assert.Equal(t, testAsset, pool.Asset)
	assert.Equal(t, uint32(25), pool.FeeBasisPoint)
	assert.Zero(t, pool.TotalShares)
	assert.True(t, pool.IsDormant())
	assert.Len(t, pool.AccountName, 40)

	// the custody account is a pure function of the pair
	samePool, err := NewPool(baseAsset, testAsset, 100)
	require.NoError(t, err)
	assert.Equal(t, pool.AccountName, samePool.AccountName)

	otherPool, err := NewPool(baseAsset, strings.Repeat("bb", 32), 25)
	require.NoError(t, err)
	assert.NotEqual(t, pool.AccountName, otherPool.AccountName)
}

func TestFailingNewPool(t *testing.T) {
	tests := []struct {
		name      string
		baseAsset string
		asset     string
		fee       uint32
		wantErr   error
	}{
		{"non-hex asset", baseAsset, "not an asset", 25, ErrPoolInvalidAsset},
		{"short asset", baseAsset, "aabb", 25, ErrPoolInvalidAsset},
		{"empty asset", baseAsset, "", 25, ErrPoolInvalidAsset},
		{"invalid base asset", "zz", testAsset, 25, ErrPoolInvalidAsset},
		{"asset equal to base asset", baseAsset, baseAsset, 25, ErrPoolInvalidAsset},
		{"fee at 100%", baseAsset, testAsset, 10000, ErrPoolInvalidFee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.baseAsset, tt.asset, tt.fee)
			require.EqualError(t, err, tt.wantErr.Error())
			assert.Nil(t, pool)
		})
	}
}

func TestPool_MintBurnShares(t *testing.T) {
	pool, err := NewPool(baseAsset, testAsset, 25)
	require.NoError(t, err)

	require.NoError(t, pool.MintShares("provider1", 1000))
	require.NoError(t, pool.MintShares("provider2", 500))
	require.NoError(t, pool.MintShares("provider1", 200))

	assert.Equal(t, uint64(1700), pool.TotalShares)
	assert.Equal(t, uint64(1200), pool.SharesOf("provider1"))
	assert.Equal(t, uint64(500), pool.SharesOf("provider2"))
	assert.False(t, pool.IsDormant())

	require.NoError(t, pool.BurnShares("provider1", 200))
	assert.Equal(t, uint64(1500), pool.TotalShares)
	assert.Equal(t, uint64(1000), pool.SharesOf("provider1"))

	// burning the whole balance removes the entry
	require.NoError(t, pool.BurnShares("provider2", 500))
	assert.Zero(t, pool.SharesOf("provider2"))
	_, ok := pool.SharesByProvider["provider2"]
	assert.False(t, ok)

	require.NoError(t, pool.BurnShares("provider1", 1000))
	assert.True(t, pool.IsDormant())
	assert.Empty(t, pool.SharesByProvider)
}

func TestFailingPool_MintBurnShares(t *testing.T) {
	pool, err := NewPool(baseAsset, testAsset, 25)
	require.NoError(t, err)
	require.NoError(t, pool.MintShares("provider1", 1000))

	err = pool.MintShares("provider1", 0)
	require.EqualError(t, err, ErrPoolInvalidShareAmount.Error())

	err = pool.MintShares("provider1", ^uint64(0))
	require.EqualError(t, err, ErrPoolShareSupplyOverflow.Error())

	err = pool.BurnShares("provider1", 0)
	require.EqualError(t, err, ErrPoolInvalidShareAmount.Error())

	err = pool.BurnShares("provider1", 1001)
	require.EqualError(t, err, ErrPoolInsufficientShareBalance.Error())

	err = pool.BurnShares("unknown", 1)
	require.EqualError(t, err, ErrPoolInsufficientShareBalance.Error())

	// nothing changed along the way
	assert.Equal(t, uint64(1000), pool.TotalShares)
	assert.Equal(t, uint64(1000), pool.SharesOf("provider1"))
}

func TestPool_Copy(t *testing.T) {
	pool, err := NewPool(baseAsset, testAsset, 25)
	require.NoError(t, err)
	require.NoError(t, pool.MintShares("provider1", 1000))

	poolCopy := pool.Copy()
	require.NoError(t, poolCopy.MintShares("provider2", 500))

	assert.Equal(t, uint64(1000), pool.TotalShares)
	assert.Zero(t, pool.SharesOf("provider2"))
	assert.Equal(t, uint64(1500), poolCopy.TotalShares)
}
