package utils

import "time"

type Metric struct {
	DatabaseRead  chan float64
	DatabaseWrite chan float64
	IcsExport     chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:  make(chan float64, 64),
		DatabaseWrite: make(chan float64, 64),
		IcsExport:     make(chan float64, 64),
	}
}

// Observe queues a latency in microseconds; it drops the sample when nobody
// is collecting.
func Observe(ch chan float64, d time.Duration) {
	select {
	case ch <- float64(d.Microseconds()):
	default:
	}
}
