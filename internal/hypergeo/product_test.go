package hypergeo

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeProduct(t *testing.T) {
	cases := []struct {
		begin, end uint64
		want       int64
	}{
		{1, 1, 1},
		{1, 5, 120},
		{3, 5, 60},
		{7, 7, 7},
		{0, 4, 0},
		{5, 4, 1},
	}
	for _, tc := range cases {
		got := RangeProduct(tc.begin, tc.end)
		require.Equal(t, 0, got.Cmp(big.NewInt(tc.want)), "RangeProduct(%d, %d) = %s", tc.begin, tc.end, got)
	}
}

func TestRangeProductExceedsUint64(t *testing.T) {
	// 25! does not fit in 64 bits.
	want, ok := new(big.Int).SetString("15511210043330985984000000", 10)
	require.True(t, ok)
	require.Equal(t, 0, RangeProduct(1, 25).Cmp(want))
}

func TestDownByEmptyProduct(t *testing.T) {
	for _, begin := range []uint64{0, 1, 20, 60} {
		require.Equal(t, int64(1), DownBy(begin, 0).Int64(), "begin=%d", begin)
	}
}

func TestDownBy(t *testing.T) {
	require.Equal(t, int64(60*59*58), DownBy(60, 3).Int64())
	require.Equal(t, int64(20), DownBy(20, 1).Int64())
	require.Equal(t, int64(120), DownBy(5, 5).Int64())
	require.Equal(t, int64(0), DownBy(3, 4).Int64())
	require.Equal(t, int64(0), DownBy(0, 1).Int64())
}

func TestChoose(t *testing.T) {
	require.Equal(t, int64(1), Choose(0, 0).Int64())
	require.Equal(t, int64(1), Choose(60, 0).Int64())
	require.Equal(t, int64(15), Choose(6, 2).Int64())
	require.Equal(t, int64(50063860), Choose(60, 6).Int64())
	require.Equal(t, int64(386206920), Choose(60, 7).Int64())
	require.Equal(t, int64(14887031544), Choose(99, 7).Int64())
	require.Equal(t, 0, Choose(40, 17).Cmp(Choose(40, 23)))
}

func TestChoosePanicsWhenKExceedsN(t *testing.T) {
	require.Panics(t, func() { Choose(3, 4) })
}
