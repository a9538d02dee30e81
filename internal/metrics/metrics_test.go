package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObserveRemote("search", "ok", 120*time.Millisecond)
	m.ObserveRemote("search", "ok", 80*time.Millisecond)
	m.ObserveRemote("detail", "incomplete", 10*time.Millisecond)
	m.RankingsWritten(3)
	m.ObserveRequest("ListMovies", 200)

	assert.InDelta(t, 2, testutil.ToFloat64(m.remoteRequestsTotal.WithLabelValues("search", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.remoteRequestsTotal.WithLabelValues("detail", "incomplete")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rankingWritesTotal), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.rankedMovies), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues("ListMovies", "200")), 0)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRemote("search", "ok", time.Second)
		m.RankingsWritten(1)
		m.ObserveRequest("ListMovies", 200)
	})
	assert.Nil(t, m.Registry())
}
