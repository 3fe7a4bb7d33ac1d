package outbox_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"recruit-api/internal/metrics"
	"recruit-api/internal/outbox"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DrainsOnClose(t *testing.T) {
	d := outbox.New(3, 4, nil)
	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		d.Enqueue(outbox.Task{Kind: "count", Run: func(context.Context) error {
			ran.Add(1)
			return nil
		}})
	}
	d.Close()
	assert.Equal(t, int32(50), ran.Load())

	// after close, tasks still run, inline
	d.Enqueue(outbox.Task{Kind: "count", Run: func(context.Context) error {
		ran.Add(1)
		return nil
	}})
	assert.Equal(t, int32(51), ran.Load())
	d.Close()
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	m := metrics.New()
	d := outbox.NewInline(m)

	assert.NotPanics(t, func() {
		d.Enqueue(outbox.Task{Kind: "notification", Run: func(context.Context) error {
			return errors.New("db down")
		}})
		d.Enqueue(outbox.Task{Kind: "notification", Run: func(context.Context) error {
			panic("boom")
		}})
		d.Enqueue(outbox.Task{Kind: "notification", Run: func(context.Context) error {
			return nil
		}})
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SideEffectsTotal.WithLabelValues("notification", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SideEffectsTotal.WithLabelValues("notification", "ok")))
}
