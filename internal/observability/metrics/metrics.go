package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	JointsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotfeed_joints_created_total",
			Help: "Total number of joint create attempts.",
		},
		[]string{"result"},
	)

	MembershipChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotfeed_membership_changes_total",
			Help: "Total number of join/leave attempts.",
		},
		[]string{"op", "result"},
	)

	SweepRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotfeed_sweep_runs_total",
			Help: "Total number of expiry sweep passes.",
		},
		[]string{"result"},
	)

	SweepExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spotfeed_sweep_expired_total",
			Help: "Total number of joints transitioned to expired by sweeps.",
		},
	)

	MessagesPostedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotfeed_messages_posted_total",
			Help: "Total number of messages accepted, by type.",
		},
		[]string{"type"},
	)

	OTPCodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotfeed_otp_codes_total",
			Help: "Total number of OTP issue/consume attempts.",
		},
		[]string{"op", "result"},
	)
)

// MustRegister attaches the collectors to the default registry with a
// constant service label.
func MustRegister(serviceName string) {
	prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		prometheus.DefaultRegisterer,
	).MustRegister(
		JointsCreatedTotal,
		MembershipChangesTotal,
		SweepRunsTotal,
		SweepExpiredTotal,
		MessagesPostedTotal,
		OTPCodesTotal,
	)
}
