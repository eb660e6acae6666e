package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshopchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workshopchat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Chat metrics
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workshopchat_rooms_created_total",
			Help: "Total chat rooms created",
		},
	)

	RoomCreateConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workshopchat_room_create_conflicts_total",
			Help: "Room inserts that lost a uniqueness race and re-read the existing room",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshopchat_messages_sent_total",
			Help: "Total messages sent",
		},
		[]string{"sender_role"}, // "provider" or "parent"
	)

	MessageMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshopchat_message_mutations_total",
			Help: "Edit and delete attempts on existing messages",
		},
		[]string{"operation", "outcome"},
	)

	MessagesMarkedRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workshopchat_messages_marked_read_total",
			Help: "Messages stamped as read",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshopchat_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
