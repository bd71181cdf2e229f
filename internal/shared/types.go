package shared

// Task types routed through asynq.
const (
	TypeReconcilePendingPayments = "payment:reconcile_pending"
)

// Queue names by priority.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ReconcilePendingPayload carries the sweep parameters.
type ReconcilePendingPayload struct {
	Limit int `json:"limit"`
}
