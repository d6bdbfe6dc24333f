package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the two contended flows: the vote ledger and the processing
// pipeline. Everything else is visible through request logs.

var (
	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videorank_votes_cast_total",
		Help: "Number of votes successfully recorded.",
	})

	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videorank_votes_rejected_total",
		Help: "Number of votes rejected, by reason.",
	}, []string{"reason"})

	VotesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videorank_votes_removed_total",
		Help: "Number of votes withdrawn by their voter.",
	})

	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videorank_processing_jobs_submitted_total",
		Help: "Number of processing jobs accepted for uploaded videos.",
	})

	JobsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videorank_processing_jobs_settled_total",
		Help: "Number of processing jobs that reached a terminal state, by state.",
	}, []string{"state"})
)
