package wallet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mQueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "custody",
		Subsystem: "wallet",
		Name:      "transactions_queued_total",
		Help:      "Number of queued transactions",
	})
	mApprovals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "custody",
		Subsystem: "wallet",
		Name:      "approvals_total",
		Help:      "Number of recorded approvals",
	})
	mExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "custody",
		Subsystem: "wallet",
		Name:      "executions_total",
		Help:      "Number of transaction executions by result",
	}, []string{"result"})
	mDeployments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "custody",
		Subsystem: "wallet",
		Name:      "deployments_total",
		Help:      "Number of deployed code units",
	})
)
