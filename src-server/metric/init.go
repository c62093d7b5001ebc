package metric

import (
	"log/slog"
	"time"

	"calendarcorp/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "calendarcorp"

func register(gauge prometheus.Gauge, name string) {
	if err := prometheus.Register(gauge); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "metric", name, "error", err)
			return
		}
	}
	slog.Debug("metric registered", "metric", name)
	gauge.Set(0)
}

func unregister(gauge prometheus.Gauge, name string) {
	switch prometheus.Unregister(gauge) {
	case true:
		slog.Debug("metric unregistered", "metric", name)
	case false:
		slog.Warn("metric not registered", "metric", name)
	}
}

// pollGauge calls sample on every tick.
func pollGauge(as *utils.AppState, name, help string, tickerInterval time.Duration, sample func(*utils.AppState) (time.Duration, error)) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
	register(gauge, name)
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case <-ticker.C:
				latency, err := sample(as)
				if err != nil {
					slog.Error("can't sample metric", "metric", name, "error", err)
					continue
				}
				gauge.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// chanGauge shows the last value received on ch and falls back to 0 when
// nothing arrives for clearTickerInterval.
func chanGauge(as *utils.AppState, name, help string, clearTickerInterval time.Duration, ch chan float64) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
	register(gauge, name)
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		clearTicker := time.NewTicker(clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case latency := <-ch:
				gauge.Set(latency)
				clearTicker.Reset(clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

// Init registers the gauges and starts their workers. It doesn't block.
func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := tickerInterval * 2

	pollGauge(as, "database_empty_read_microsec",
		"The latency of an empty database read in microseconds",
		tickerInterval, emptyRead)
	chanGauge(as, "database_read_microsec",
		"The latency of a database read in microseconds",
		clearTickerInterval, as.MetricChans.DatabaseRead)
	chanGauge(as, "database_write_microsec",
		"The latency of a database write in microseconds",
		clearTickerInterval, as.MetricChans.DatabaseWrite)
	chanGauge(as, "ics_export_microsec",
		"The latency of an ICS export in microseconds",
		clearTickerInterval, as.MetricChans.IcsExport)
}
