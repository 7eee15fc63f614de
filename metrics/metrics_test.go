// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Registers(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.ObserveExchange(ExchangeSuccess)
	r.ObserveRequest("GET", 200, 10*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestRecorder_Observe(t *testing.T) {
	t.Parallel()

	r, err := New(nil)
	require.NoError(t, err)

	r.ObserveExchange(ExchangeSuccess)
	r.ObserveExchange(ExchangeProviderError)
	r.ObserveExchange(ExchangeProviderError)
	r.ObserveRequest("GET", 200, time.Millisecond)
	r.ObserveRequest("POST", 404, time.Millisecond)
	r.ObserveRequest("GET", 0, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(r.exchanges.WithLabelValues(ExchangeSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.exchanges.WithLabelValues(ExchangeProviderError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("GET", "2xx")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("POST", "4xx")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("GET", "error")), 0)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveExchange(ExchangeSuccess)
		r.ObserveRequest("GET", 200, time.Second)
	})
	assert.Nil(t, r.Collectors())
}

func TestStatusClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{0, "error"},
		{200, "2xx"},
		{204, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusClass(tt.status))
	}
}
