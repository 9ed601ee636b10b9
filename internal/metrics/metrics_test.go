package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PostCreated()
	m.CommentCreated()
	m.CommentCreated()
	m.CommentDeleted()
	m.LikeToggled(true)
	m.LikeToggled(true)
	m.LikeToggled(false)
	m.PersistenceFailure("toggle like")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.postsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commentsDeleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.likeToggles.WithLabelValues("liked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.likeToggles.WithLabelValues("unliked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistenceFailures.WithLabelValues("toggle like")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PostCreated()
		m.CommentCreated()
		m.CommentDeleted()
		m.LikeToggled(true)
		m.PersistenceFailure("x")
	})
}
