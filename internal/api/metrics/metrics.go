// Package metrics defines and registers all custom Prometheus metrics
// for the catalog API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts completed signups.
// Label:
//   - role: the role assigned at creation ("admin" or "user")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by assigned role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts create/update/delete operations.
// Labels:
//   - operation: "create", "update", or "delete"
//   - result: "success", "denied", or "error"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// CatalogCacheTotal counts list-cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
