package utils_test

import (
	"context"
	"testing"
	"time"

	"calendarcorp/src-server/utils"
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

func TestNewAppState(t *testing.T) {
	as := newAppState(t)
	defer as.GracefulShutdown()

	if as.Config.GetPort() == "" {
		t.Error("port has no default")
	}
	if as.Config.GetLocation() != time.UTC {
		t.Errorf("location = %s", as.Config.GetLocation())
	}
	if as.Config.GetMetricCollectionInterval() != time.Minute {
		t.Errorf("interval = %s", as.Config.GetMetricCollectionInterval())
	}
	if as.Exporter.ProdID != "-//Calendario Corporativo//PT-BR" || as.Exporter.UIDDomain != "calendarcorp" {
		t.Errorf("exporter = %+v", as.Exporter)
	}
	if as.Now().Location() != as.Config.GetLocation() {
		t.Error("Now isn't in the configured location")
	}
	// schema is ready
	if _, err := as.Events.CountActiveOn(context.Background(), as.Now()); err != nil {
		t.Error(err)
	}
}

func TestGracefulShutdownClosesChans(t *testing.T) {
	as := newAppState(t)
	a := as.CreateGracefulShutdownChan()
	b := as.CreateGracefulShutdownChan()
	as.GracefulShutdown()
	for _, ch := range []*chan struct{}{a, b} {
		select {
		case <-*ch:
		case <-time.After(time.Second):
			t.Fatal("channel wasn't closed")
		}
	}
}

func TestObserveDoesNotBlock(t *testing.T) {
	ch := make(chan float64, 1)
	utils.Observe(ch, 1500*time.Microsecond)
	utils.Observe(ch, time.Second) // dropped, buffer is full
	if got := <-ch; got != 1500 {
		t.Errorf("got %v, want 1500", got)
	}
}

func TestGracefulShutdownChanAfterShutdown(t *testing.T) {
	as := newAppState(t)
	as.GracefulShutdown()
	ch := as.CreateGracefulShutdownChan()
	select {
	case <-*ch:
	default:
		t.Fatal("a channel handed out after shutdown should already be closed")
	}
}
