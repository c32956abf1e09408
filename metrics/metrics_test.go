package metrics

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/greenleaf/reparse"
	"github.com/dhamidi/greenleaf/tree"
)

func TestObserveParse(t *testing.T) {
	m := New(nil)
	m.ObserveParse(tree.Parse("fn f() { a b }"), time.Millisecond)
	m.ObserveParse(tree.Parse("fn f() {}"), time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.parses), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.syntaxErrors), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.parseSeconds))
}

func TestObserveReparse(t *testing.T) {
	m := New(nil)
	before := tree.Parse("fn foo() {}")
	_, _, err := reparse.Reparse(before, reparse.Insertion(6, "x"), reparse.WithObserver(m.ObserveReparse))
	require.NoError(t, err)
	m.ObserveReparse(reparse.Full, true)

	assert.InDelta(t, 1, testutil.ToFloat64(m.reparses.WithLabelValues("leaf")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.reparses.WithLabelValues("full")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.mismatches), 0)
}

func TestCacheCollector(t *testing.T) {
	cache := tree.NewNodeCache(tree.DefaultCacheSize)
	tree.Parse("fn f() {}\nfn f() {}", tree.WithCache(cache))
	stats := cache.Stats()

	want := `
# HELP greenleaf_node_cache_entries Green nodes currently held by the node cache.
# TYPE greenleaf_node_cache_entries gauge
greenleaf_node_cache_entries ` + strconv.Itoa(stats.Entries) + `
`
	err := testutil.CollectAndCompare(NewCacheCollector(cache), strings.NewReader(want), "greenleaf_node_cache_entries")
	assert.NoError(t, err)
	assert.Equal(t, 4, testutil.CollectAndCount(NewCacheCollector(cache)))
}

func TestHandler(t *testing.T) {
	m := New(tree.NewNodeCache(16))
	m.ObserveReparse(reparse.Block, false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `greenleaf_reparses_total{strategy="block"} 1`)
	assert.Contains(t, body, "greenleaf_node_cache_hits_total")
}
