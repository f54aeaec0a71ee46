package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("GET", "/api/books", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/api/books", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/books", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestImportCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ImportSucceeded("books", 12)
	m.ImportSucceeded("books", 3)
	m.ImportFailed("authors")
	m.TokensPruned(5)

	assert.Equal(t, 15.0, testutil.ToFloat64(m.importedRows.WithLabelValues("books")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importFailures.WithLabelValues("authors")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.tokensPruned))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
