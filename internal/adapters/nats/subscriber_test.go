package natsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

type stubPeers struct{}

func (stubPeers) PlaceExists(context.Context, string, string) bool { return true }

func (stubPeers) DeleteForPlace(context.Context, string, string) ports.RemoteOutcome {
	return ports.RemoteOutcome{}
}

func (stubPeers) DeleteForRoute(context.Context, string, string) ports.RemoteOutcome {
	return ports.RemoteOutcome{}
}

func placeDeletedPayload(t *testing.T, placeID string) []byte {
	t.Helper()
	data, err := json.Marshal(PlaceEvent{Type: "deleted", PlaceID: placeID, At: time.Now().UTC()})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDispatchPlaceDeleted_AuditsRoutes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRouteRepo()
	for _, places := range [][]string{{"gone", "kept"}, {"kept"}, {"a", "gone"}} {
		if err := repo.Create(ctx, &domain.Route{Name: "r", Places: places}); err != nil {
			t.Fatal(err)
		}
	}
	routes := usecases.NewRouteService(repo, stubPeers{}, stubPeers{})

	var stale int
	action := dispatchPlaceDeleted(ctx, placeDeletedPayload(t, "gone"), func(ctx context.Context, placeID string) error {
		n, err := routes.AuditDeletedPlace(ctx, placeID)
		stale = n
		return err
	})
	if action != ackOK {
		t.Fatalf("action = %v, want ack", action)
	}
	if stale != 2 {
		t.Errorf("stale routes = %d, want 2", stale)
	}
}

func TestDispatchPlaceDeleted_MalformedIsTerminated(t *testing.T) {
	called := false
	handler := func(context.Context, string) error { called = true; return nil }

	for _, data := range [][]byte{[]byte("not json"), []byte(`{"type":"deleted"}`)} {
		if got := dispatchPlaceDeleted(context.Background(), data, handler); got != ackTerm {
			t.Errorf("dispatch(%s) = %v, want term", data, got)
		}
	}
	if called {
		t.Error("handler must not run for malformed payloads")
	}
}

func TestDispatchPlaceDeleted_HandlerErrorIsRedelivered(t *testing.T) {
	got := dispatchPlaceDeleted(context.Background(), placeDeletedPayload(t, "p1"), func(context.Context, string) error {
		return errors.New("database unavailable")
	})
	if got != ackNak {
		t.Errorf("action = %v, want nak", got)
	}
}
