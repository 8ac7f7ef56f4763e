package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSnapshotWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securevista_product_snapshot_writes_total",
		Help: "Product collection snapshots written to the blob store.",
	})
	metricSnapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "securevista_product_snapshot_items",
		Help: "Product count in the most recently written snapshot.",
	})
	metricMessagesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securevista_messages_created_total",
		Help: "Contact messages accepted.",
	})
	metricMessagesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securevista_messages_deleted_total",
		Help: "Contact messages deleted.",
	})
)
