package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk-admin/internal/events"
)

func TestAuditServiceRecord(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewAuditService(zap.New(core), 2)
	ctx := context.Background()

	for i, kind := range []events.EventType{events.EventAgentLoggedIn, events.EventRowsDeleted, events.EventRowsDeleted} {
		require.NoError(t, svc.Record(ctx, events.Event{
			ID:        string(rune('a' + i)),
			Type:      kind,
			Resource:  "tickets",
			Actor:     events.Actor{AgentID: "a-01"},
			Timestamp: time.Unix(int64(i), 0),
			Payload:   events.RowsDeletedPayload{RequestedKeys: []string{"t-01"}, Deleted: 1},
		}))
	}

	recent := svc.Recent()
	require.Len(t, recent, 2)
	require.Equal(t, "b", recent[0].ID)
	require.Equal(t, "c", recent[1].ID)

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 3)
	fields := entries[2].ContextMap()
	require.Equal(t, "tickets", fields["resource"])
	require.Equal(t, int64(1), fields["deleted"])
}
