// Package metrics exposes Prometheus counters for community activity.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the community counters. A nil *Metrics records nothing.
type Metrics struct {
	postsCreated        prometheus.Counter
	commentsCreated     prometheus.Counter
	commentsDeleted     prometheus.Counter
	likeToggles         *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
}

// New registers the community counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		postsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "community",
			Name:      "posts_created_total",
			Help:      "Total number of posts created",
		}),
		commentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "community",
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		commentsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "community",
			Name:      "comments_deleted_total",
			Help:      "Total number of comments deleted",
		}),
		likeToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community",
			Name:      "like_toggles_total",
			Help:      "Like toggles by resulting state",
		}, []string{"result"}),
		persistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community",
			Name:      "persistence_failures_total",
			Help:      "Storage failures by operation",
		}, []string{"operation"}),
	}
}

func (m *Metrics) PostCreated() {
	if m != nil {
		m.postsCreated.Inc()
	}
}

func (m *Metrics) CommentCreated() {
	if m != nil {
		m.commentsCreated.Inc()
	}
}

func (m *Metrics) CommentDeleted() {
	if m != nil {
		m.commentsDeleted.Inc()
	}
}

// LikeToggled records the state a toggle ended in.
func (m *Metrics) LikeToggled(liked bool) {
	if m == nil {
		return
	}
	result := "unliked"
	if liked {
		result = "liked"
	}
	m.likeToggles.WithLabelValues(result).Inc()
}

func (m *Metrics) PersistenceFailure(operation string) {
	if m != nil {
		m.persistenceFailures.WithLabelValues(operation).Inc()
	}
}

// Serve exposes gatherer on addr at /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics server shutdown: %v", err)
		}
	}()

	log.Printf("Metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
