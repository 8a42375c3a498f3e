package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantProduct_OutGivenIn(t *testing.T) {
	type args struct {
		amountIn      uint64
		reserveIn     uint64
		reserveOut    uint64
		feeBasisPoint uint32
	}
	tests := []struct {
		name          string
		args          args
		wantAmountOut uint64
	}{
		{
			"OutGivenIn with default fee at reserve scale",
			args{
				amountIn:      1000000000,
				reserveIn:     10000000000,
				reserveOut:    500000000000,
				feeBasisPoint: 25,
			},
			45351216185,
		},
		{
			"OutGivenIn with a small input amount",
			args{
				amountIn:      10000,
				reserveIn:     100000000,
				reserveOut:    650000000000,
				feeBasisPoint: 25,
			},
			64831033,
		},
		{
			"OutGivenIn without fee",
			args{
				amountIn:      1000000000,
				reserveIn:     10000000000,
				reserveOut:    500000000000,
				feeBasisPoint: 0,
			},
			45454545454,
		},
		{
			"OutGivenIn does not overflow on near-max reserves",
			args{
				amountIn:      1 << 63,
				reserveIn:     1 << 63,
				reserveOut:    1 << 63,
				feeBasisPoint: 25,
			},
			4605914196126477531,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAmountOut, err := OutGivenIn(
				tt.args.amountIn, tt.args.reserveIn, tt.args.reserveOut,
				tt.args.feeBasisPoint,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmountOut, gotAmountOut)
		})
	}
}

func TestConstantProduct_OutGivenIn_FeeInFavourOfThePool(t *testing.T) {
	withFee, err := OutGivenIn(1000000000, 10000000000, 500000000000, 25)
	require.NoError(t, err)
	withoutFee, err := OutGivenIn(1000000000, 10000000000, 500000000000, 0)
	require.NoError(t, err)

	assert.Less(t, withFee, withoutFee)
}

func TestConstantProduct_OutGivenIn_Monotonicity(t *testing.T) {
	var prev uint64
	for _, amountIn := range []uint64{1000, 1000000, 1000000000, 1000000000000} {
		out, err := OutGivenIn(amountIn, 10000000000, 500000000000, 25)
		require.NoError(t, err)
		assert.Greater(t, out, prev)
		prev = out
	}
}

func TestFailingConstantProduct_OutGivenIn(t *testing.T) {
	type args struct {
		amountIn      uint64
		reserveIn     uint64
		reserveOut    uint64
		feeBasisPoint uint32
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			"drained input reserve",
			args{1000, 0, 500000000000, 25},
			ErrInvalidReserves,
		},
		{
			"drained output reserve",
			args{1000, 10000000000, 0, 25},
			ErrInvalidReserves,
		},
		{
			"zero input amount",
			args{0, 10000000000, 500000000000, 25},
			ErrAmountTooLow,
		},
		{
			"output truncates to zero",
			args{1, 1000000000000, 10, 25},
			ErrAmountTooLow,
		},
		{
			"fee at 100%",
			args{1000, 10000000000, 500000000000, 10000},
			ErrInvalidFee,
		},
		{
			"fee above the denominator",
			args{1000, 10000000000, 500000000000, math.MaxUint32},
			ErrInvalidFee,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := OutGivenIn(
				tt.args.amountIn, tt.args.reserveIn, tt.args.reserveOut,
				tt.args.feeBasisPoint,
			)
			require.EqualError(t, err, tt.wantErr.Error())
			assert.Zero(t, out)
		})
	}
}

func TestConstantProduct_SpotPrice(t *testing.T) {
	price, err := SpotPrice(10000000000, 500000000000)
	require.NoError(t, err)
	assert.Equal(t, "50", price.String())

	price, err = SpotPrice(500000000000, 10000000000)
	require.NoError(t, err)
	assert.Equal(t, "0.02", price.String())

	_, err = SpotPrice(0, 10)
	require.EqualError(t, err, ErrInvalidReserves.Error())
}
