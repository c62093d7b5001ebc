package metric_test

import (
	"strings"
	"testing"
	"time"

	"calendarcorp/src-server/metric"
	"calendarcorp/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func newAppState(t *testing.T) *utils.AppState {
	t.Helper()
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("STATIC_WEB_CLIENT_DIR", "")
	t.Setenv("METRIC_COLLECTION_INTERVAL", "1m")
	return utils.NewAppState()
}

func registered(t *testing.T) []string {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0)
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "calendarcorp_") {
			names = append(names, mf.GetName())
		}
	}
	return names
}

func waitUnregistered(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(registered(t)) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("still registered after shutdown: %v", registered(t))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestInitRegistersAndShutdownUnregisters(t *testing.T) {
	as := newAppState(t)
	metric.Init(as)

	if got := registered(t); len(got) != 4 {
		t.Errorf("registered %v, want 4 gauges", got)
	}

	as.GracefulShutdown()
	waitUnregistered(t)
}

func TestInitAfterShutdown(t *testing.T) {
	as := newAppState(t)
	as.GracefulShutdown()

	// workers started late still see the shutdown and leave
	metric.Init(as)
	waitUnregistered(t)
}
