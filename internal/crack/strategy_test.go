package crack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/crackdb/internal/column"
	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

type run struct {
	v int64
	n int
}

// tiled builds a cracked column made of the given tagged runs.
func tiled(t *testing.T, runs ...run) *column.Column {
	t.Helper()
	var values []int64
	for _, r := range runs {
		for range r.n {
			values = append(values, r.v)
		}
	}
	c := column.New("v")
	c.Append(values)
	require.NoError(t, c.InitializeCracked())
	start := 0
	for _, r := range runs {
		c.Tag(start, r.n)
		start += r.n
	}
	require.NoError(t, c.CheckInvariants())
	return c
}

func workingOf(c *column.Column) []int64 {
	out := make([]int64, c.Len())
	for i := range out {
		out[i] = c.Working(i)
	}
	return out
}

func TestSwapHighCases(t *testing.T) {
	tests := []struct {
		name     string
		strategy RunMergeStrategy
		runs     []run
		wantHi   int
		want     []int64
	}{
		{
			name:     "underswap equal lengths",
			strategy: Underswap{},
			runs:     []run{{9, 2}, {5, 1}, {1, 2}},
			wantHi:   2,
			want:     []int64{1, 1, 5, 9, 9},
		},
		{
			name:     "underswap cursor run shorter",
			strategy: Underswap{},
			runs:     []run{{9, 1}, {5, 1}, {1, 3}},
			wantHi:   3,
			want:     []int64{1, 5, 1, 1, 9},
		},
		{
			name:     "underswap cursor run longer",
			strategy: Underswap{},
			runs:     []run{{9, 3}, {5, 1}, {1, 2}},
			wantHi:   3,
			want:     []int64{1, 1, 9, 5, 9, 9},
		},
		{
			name:     "overswap equal lengths",
			strategy: Overswap{},
			runs:     []run{{9, 2}, {5, 1}, {1, 2}},
			wantHi:   2,
			want:     []int64{1, 1, 5, 9, 9},
		},
		{
			name:     "overswap longer cursor run, disjoint target",
			strategy: Overswap{},
			runs:     []run{{9, 3}, {5, 1}, {1, 2}},
			wantHi:   2,
			want:     []int64{5, 1, 1, 9, 9, 9},
		},
		{
			name:     "overswap longer cursor run, disjoint target splits padding",
			strategy: Overswap{},
			runs:     []run{{9, 2}, {4, 3}, {1, 1}},
			wantHi:   3,
			want:     []int64{4, 1, 4, 4, 9, 9},
		},
		{
			name:     "overswap longer cursor run, overlapping target",
			strategy: Overswap{},
			runs:     []run{{9, 3}, {1, 2}},
			wantHi:   1,
			want:     []int64{1, 1, 9, 9, 9},
		},
		{
			name:     "overswap longer high run, overlapping gap",
			strategy: Overswap{},
			runs:     []run{{9, 1}, {5, 1}, {1, 3}},
			wantHi:   3,
			want:     []int64{1, 1, 1, 5, 9},
		},
		{
			name:     "overswap longer high run, no gap",
			strategy: Overswap{},
			runs:     []run{{9, 1}, {1, 3}},
			wantHi:   2,
			want:     []int64{1, 1, 1, 9},
		},
		{
			name:     "overswap longer high run, disjoint padding",
			strategy: Overswap{},
			runs:     []run{{9, 1}, {5, 1}, {7, 2}, {1, 3}},
			wantHi:   5,
			want:     []int64{1, 1, 1, 7, 5, 7, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tiled(t, tt.runs...)
			hi := c.Len() - 1

			got, err := tt.strategy.SwapHigh(c, 0, hi)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHi, got)
			assert.Equal(t, tt.want, workingOf(c))
			require.NoError(t, c.CheckInvariants())

			moved := c.Working(hi)
			for i := got + 1; i <= hi; i++ {
				assert.Equal(t, moved, c.Working(i), "slot %d above new high", i)
			}
		})
	}
}

func TestOverswapNeverSplitsTheLongerRun(t *testing.T) {
	c := tiled(t, run{9, 1}, run{5, 1}, run{7, 2}, run{1, 3})
	_, err := Overswap{}.SwapHigh(c, 0, c.Len()-1)
	require.NoError(t, err)
	assert.Equal(t, 3, c.RunLength(0))
	assert.Equal(t, 3, c.RunLength(2))

	c = tiled(t, run{9, 1}, run{5, 1}, run{7, 2}, run{1, 3})
	_, err = Underswap{}.SwapHigh(c, 0, c.Len()-1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.RunLength(0), "underswap leaves the high run split")
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("")
	require.NoError(t, err)
	assert.Equal(t, UnderswapName, s.Name())

	s, err = StrategyByName(" Overswap ")
	require.NoError(t, err)
	assert.Equal(t, OverswapName, s.Name())

	_, err = StrategyByName("sideswap")
	assert.True(t, dberrors.Is(err, dberrors.ErrUnknownStrategy), "got %v", err)

	assert.Len(t, Strategies(), 2)
}
