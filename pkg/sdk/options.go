package frontsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix       string
	fetchLimit      int
	intraMax        int
	maxPermuteTerms int
	pageSize        int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis 8+ instance, or to
// Valkey with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCluster connects to several nodes of one deployment.
func WithCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
		c.username = username
		c.password = password
	})
}

// WithDB selects the logical database on standalone servers.
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithKeyPrefix namespaces every key and the index. Default: "frontsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithFetchLimit caps the rows loaded per kind-set on a cache miss. Default: 5000.
func WithFetchLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchLimit = n
	})
}

// WithFuzzy tunes matching: intraMax extra characters are tolerated inside a
// term, and queries with more than maxPermuteTerms terms are not reordered.
// Defaults: 1 and 5.
func WithFuzzy(intraMax, maxPermuteTerms int) Option {
	return optionFunc(func(c *clientConfig) {
		c.intraMax = intraMax
		c.maxPermuteTerms = maxPermuteTerms
	})
}

// WithPageSize sets the number of hits returned when a request has no limit. Default: 50.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
