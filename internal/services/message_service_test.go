package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

func TestSendMessage_PartiesOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	sent, err := c.Message.SendMessage(db, f.order.ID, f.brandUserID, &dto.SendMessageRequest{Text: "Can you start next week?"})
	require.NoError(t, err)
	assert.Equal(t, f.brandProfile, sent.SenderProfileID)
	assert.Equal(t, f.infProfile, sent.ReceiverProfileID)

	reply, err := c.Message.SendMessage(db, f.order.ID, f.infUserID, &dto.SendMessageRequest{Text: "Sure, Monday works"})
	require.NoError(t, err)
	assert.Equal(t, f.brandProfile, reply.ReceiverProfileID)

	strangerID, _ := createUserWithProfile(t, db, models.UserRoleInfluencer, "Mallory")
	_, err = c.Message.SendMessage(db, f.order.ID, strangerID, &dto.SendMessageRequest{Text: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParty)
	_, _, _, err = c.Message.ListMessages(db, f.order.ID, strangerID, &dto.PageRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParty)

	assert.Equal(t, int64(1), countNotifications(t, db, f.infProfile, models.ActionNewMessage))
	assert.Equal(t, int64(1), countNotifications(t, db, f.brandProfile, models.ActionNewMessage))
}

func TestListMessages_CursorWalk(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	// Spread the rows a minute apart so the walk order is deterministic.
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		sent, err := c.Message.SendMessage(db, f.order.ID, f.brandUserID, &dto.SendMessageRequest{
			Text: fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Message{}).
			Where("id = ?", sent.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	seen := make(map[string]bool)
	cursor := ""
	pages := 0
	for {
		page, total, next, err := c.Message.ListMessages(db, f.order.ID, f.infUserID, &dto.PageRequest{Cursor: cursor, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		for _, m := range page {
			assert.False(t, seen[m.ID], "message %s returned twice", m.ID)
			seen[m.ID] = true
		}
		pages++
		if next == "" || len(page) == 0 {
			break
		}
		cursor = next
	}

	assert.Len(t, seen, 5)
	assert.GreaterOrEqual(t, pages, 3)

	// Newest first on the first page.
	first, _, _, err := c.Message.ListMessages(db, f.order.ID, f.infUserID, &dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "message 4", first[0].Text)
	assert.Equal(t, "message 3", first[1].Text)
}

func TestListMessages_BadCursor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	c := newTestContainer()
	f := newOrderFixture(t, db, c)

	_, _, _, err := c.Message.ListMessages(db, f.order.ID, f.brandUserID, &dto.PageRequest{Cursor: "garbage!!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCursor)
}
