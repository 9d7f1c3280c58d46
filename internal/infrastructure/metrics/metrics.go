package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Group metrics
	GroupsCreated prometheus.Counter
	MembersAdded  prometheus.Counter

	// Expense metrics
	ExpensesCreated *prometheus.CounterVec
	ExpensesDeleted prometheus.Counter
	ExpenseAmount   prometheus.Histogram
	ExpenseDuration prometheus.Histogram
	ExpenseErrors   *prometheus.CounterVec

	// Payment metrics
	PaymentsInitiated prometheus.Counter
	PaymentsConfirmed prometheus.Counter
	PaymentsDisputed  prometheus.Counter
	PaymentDuration   prometheus.Histogram

	// Ledger metrics
	BalanceQueries         prometheus.Counter
	BalanceCacheHits       prometheus.Counter
	BalanceCacheMisses     prometheus.Counter
	SettlementPlans        prometheus.Counter
	SettlementTransfers    prometheus.Histogram
	ReconciliationWarnings prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec

	// Concurrency metrics
	VersionConflicts prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Group metrics
		GroupsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_groups_created_total",
			Help: "Total number of groups created",
		}),
		MembersAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_members_added_total",
			Help: "Total number of members added to groups",
		}),

		// Expense metrics
		ExpensesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_expenses_created_total",
				Help: "Total number of expenses created by split method",
			},
			[]string{"method"},
		),
		ExpensesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_expenses_deleted_total",
			Help: "Total number of expenses deleted",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_expense_amount",
			Help:    "Expense amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ExpenseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_expense_duration_seconds",
			Help:    "Duration of expense operations",
			Buckets: prometheus.DefBuckets,
		}),
		ExpenseErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_expense_errors_total",
				Help: "Total number of expense errors by type",
			},
			[]string{"error_type"},
		),

		// Payment metrics
		PaymentsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_payments_initiated_total",
			Help: "Total number of payments initiated",
		}),
		PaymentsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_payments_confirmed_total",
			Help: "Total number of payments confirmed",
		}),
		PaymentsDisputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_payments_disputed_total",
			Help: "Total number of payments disputed",
		}),
		PaymentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_payment_duration_seconds",
			Help:    "Duration of payment operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Ledger metrics
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_balance_queries_total",
			Help: "Total number of balance queries",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_balance_cache_hits_total",
			Help: "Total number of balance cache hits",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_balance_cache_misses_total",
			Help: "Total number of balance cache misses",
		}),
		SettlementPlans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_settlement_plans_total",
			Help: "Total number of settlement plans computed",
		}),
		SettlementTransfers: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitledger_settlement_transfers",
			Help:    "Number of transfers per settlement plan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		ReconciliationWarnings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_reconciliation_warnings_total",
			Help: "Total number of balance reconciliation warnings",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "splitledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "splitledger_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Concurrency metrics
		VersionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_version_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splitledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
