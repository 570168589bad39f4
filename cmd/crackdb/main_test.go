package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		strategy, logLevel, configPath = "", "", ""
		metricsAddr, metricsDump = "", false
	})
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRandomTree(t *testing.T) {
	src, dst := randomTree(20, 3)
	require.Len(t, src, 38)
	require.Len(t, dst, 38)

	seen := map[int64]int{}
	for i := range src {
		assert.NotEqual(t, src[i], dst[i])
		seen[src[i]]++
	}
	for n := int64(2); n <= 20; n++ {
		assert.GreaterOrEqual(t, seen[n], 1, "node %d has an edge", n)
	}

	again, _ := randomTree(20, 3)
	assert.Equal(t, src, again, "same seed, same tree")
}

func TestCompareCommand(t *testing.T) {
	out := execute(t, "compare", "--nodes", "60", "--seed", "5", "--log-level", "error")
	assert.Contains(t, out, "underswap")
	assert.Contains(t, out, "overswap")
	assert.Contains(t, out, "all strategies agree")
}

func TestBFSCommand(t *testing.T) {
	out := execute(t, "bfs", "-n", "40", "-r", "2", "-s", "overswap", "--log-level", "error")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "visited=40")
	assert.Contains(t, lines[1], "visited=40")
	// second traversal answers every lookup from the pivot index
	assert.Contains(t, lines[1], "moves=0")
}

func TestBadStrategyFlag(t *testing.T) {
	rootCmd.SetArgs([]string{"compare", "-s", "sideswap", "--log-level", "error"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		strategy, logLevel = "", ""
	})
	err := rootCmd.Execute()
	assert.True(t, dberrors.Is(err, dberrors.ErrUnknownStrategy), "got %v", err)
}

func TestCompareDumpsMetrics(t *testing.T) {
	out := execute(t, "compare", "--nodes", "30", "--metrics-dump", "--log-level", "error")
	assert.Contains(t, out, "all strategies agree")
	assert.Contains(t, out, "crackdb_selects_total")
	assert.Contains(t, out, `strategy="overswap"`)
	assert.Contains(t, out, "crackdb_rows_inserted_total")
}

func TestMetricsNotDumpedByDefault(t *testing.T) {
	out := execute(t, "compare", "--nodes", "10", "--log-level", "error")
	assert.NotContains(t, out, "crackdb_selects_total")
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "crackdb_selects_total", Help: "selects"})
	reg.MustRegister(c)
	c.Inc()

	rec := httptest.NewRecorder()
	metricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "crackdb_selects_total 1")
}

func TestServeMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stop, err := serveMetrics("127.0.0.1:0", prometheus.NewRegistry(), logger)
	require.NoError(t, err)
	stop()

	_, err = serveMetrics("not-an-address", prometheus.NewRegistry(), logger)
	assert.Error(t, err)
}
