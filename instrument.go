package kafka

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
)

// DecoderMetrics are the instruments updated by an instrumented decoder.
// Nil fields are replaced with discard metrics.
type DecoderMetrics struct {
	Decoded  metrics.Counter
	Failed   metrics.Counter
	Duration metrics.Histogram
}

// InstrumentDecoder counts successful and failed calls of dec and observes
// their duration in seconds. The labels are added to every observation.
func InstrumentDecoder(dec Decoder, m DecoderMetrics, labelValues ...string) Decoder {
	if m.Decoded == nil {
		m.Decoded = discard.NewCounter()
	}
	if m.Failed == nil {
		m.Failed = discard.NewCounter()
	}
	if m.Duration == nil {
		m.Duration = discard.NewHistogram()
	}
	decoded := m.Decoded.With(labelValues...)
	failed := m.Failed.With(labelValues...)
	duration := m.Duration.With(labelValues...)

	return DecoderFunc(func(data []byte) (v any, err error) {
		defer func(begin time.Time) {
			duration.Observe(time.Since(begin).Seconds())
			if err != nil {
				failed.Add(1)
			} else {
				decoded.Add(1)
			}
		}(time.Now())
		return dec.Decode(data)
	})
}
