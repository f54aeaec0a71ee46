package server

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lppm/research-portal/internal/pkg/metrics"
)

type stubCleaner struct {
	pruned int64
	err    error
	calls  int
}

func (s *stubCleaner) CleanupExpiredTokens(context.Context) (int64, error) {
	s.calls++
	return s.pruned, s.err
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := NewScheduler("every tuesday", &stubCleaner{}, nil, zerolog.Nop())
	require.Error(t, err)
}

func TestNewSchedulerRegistersJob(t *testing.T) {
	scheduler, err := NewScheduler("@daily", &stubCleaner{}, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 1)
}

func TestRunTokenCleanupRecordsPrunedTokens(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	cleaner := &stubCleaner{pruned: 4}

	runTokenCleanup(cleaner, m, zerolog.Nop())

	assert.Equal(t, 1, cleaner.calls)
	expected := `
# HELP lppm_access_tokens_pruned_total Expired or revoked access tokens removed by the cleanup job.
# TYPE lppm_access_tokens_pruned_total counter
lppm_access_tokens_pruned_total 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lppm_access_tokens_pruned_total"))
}

func TestRunTokenCleanupFailure(t *testing.T) {
	cleaner := &stubCleaner{err: errors.New("db down")}

	assert.NotPanics(t, func() { runTokenCleanup(cleaner, nil, zerolog.Nop()) })
	assert.Equal(t, 1, cleaner.calls)
}
