package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dhamidi/greenleaf/tree"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "node_cache", "entries"),
		"Green nodes currently held by the node cache.", nil, nil)
	cacheHitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "node_cache", "hits_total"),
		"Node cache lookups that returned a shared node.", nil, nil)
	cacheMissesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "node_cache", "misses_total"),
		"Node cache lookups that stored a new node.", nil, nil)
	cacheEvictionsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "node_cache", "evictions_total"),
		"Nodes dropped from the node cache to stay within its bound.", nil, nil)
)

// CacheCollector reads tree.CacheStats at scrape time.
type CacheCollector struct {
	cache *tree.NodeCache
}

func NewCacheCollector(cache *tree.NodeCache) *CacheCollector {
	return &CacheCollector{cache: cache}
}

func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
	ch <- cacheHitsDesc
	ch <- cacheMissesDesc
	ch <- cacheEvictionsDesc
}

func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.cache.Stats()
	ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(cacheHitsDesc, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(cacheMissesDesc, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(cacheEvictionsDesc, prometheus.CounterValue, float64(stats.Evictions))
}
