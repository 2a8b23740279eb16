package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

func TestNotification_AssignmentVerified(t *testing.T) {
	for _, tc := range []struct {
		name  string
		ev    event.AssignmentVerified
		level string
		msg   string
	}{
		{
			name:  "success",
			ev:    event.AssignmentVerified{AssignmentID: "a1", AssignmentNumber: "AM-1-abc", Result: "success", VerificationCount: 2},
			level: "INFO",
			msg:   "mission order verified",
		},
		{
			name:  "expired",
			ev:    event.AssignmentVerified{AssignmentID: "a1", AssignmentNumber: "AM-1-abc", Result: "expired", VerificationCount: 3},
			level: "WARN",
			msg:   "expired mission order presented",
		},
		{
			name:  "failed",
			ev:    event.AssignmentVerified{Result: "failed"},
			level: "WARN",
			msg:   "unknown qr code presented",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			ctx := log.NewContext(context.Background(), log.LevelDebug, log.OutputJSON, buf)
			tc.ev.VerifiedAt = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
			msg, err := tc.ev.Marshal()
			require.NoError(t, err)

			require.NoError(t, NewNotification().AssignmentVerified(ctx, msg))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tc.level, line["level"])
			assert.Equal(t, tc.msg, line["msg"])
			assert.Equal(t, tc.ev.Result, line["result"])
		})
	}
}

func TestNotification_AssignmentIssued(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := log.NewContext(context.Background(), log.LevelDebug, log.OutputJSON, buf)
	ev := &event.AssignmentIssued{AssignmentID: "a1", AssignmentNumber: "AM-1-abc", JournalistID: "j1", Status: "active"}
	msg, err := ev.Marshal()
	require.NoError(t, err)

	require.NoError(t, NewNotification().AssignmentIssued(ctx, msg))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "mission order issued", line["msg"])
	assert.Equal(t, "AM-1-abc", line["number"])

	assert.Error(t, NewNotification().AssignmentIssued(ctx, pubsub.Message("not json")))
}
