package message

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func direct(sender, receiver uuid.UUID, text string) *DirectMessage {
	m, _ := NewDirectText(sender, receiver, text)
	return m
}

func TestDirectThread_MergeMatchingPair(t *testing.T) {
	viewer, peer, stranger := uuid.New(), uuid.New(), uuid.New()
	th := NewDirectThread(viewer, peer)

	assert.True(t, th.Merge(direct(viewer, peer, "hi")))
	assert.True(t, th.Merge(direct(peer, viewer, "hey")))
	assert.Equal(t, 2, th.Len())

	assert.False(t, th.Merge(direct(stranger, viewer, "psst")))
	assert.False(t, th.Merge(direct(peer, stranger, "other thread")))
	assert.False(t, th.Merge(direct(viewer, stranger, "mine, elsewhere")))
	assert.Equal(t, 2, th.Len())
}

func TestThread_DropsRedeliveredEvent(t *testing.T) {
	viewer, peer := uuid.New(), uuid.New()
	th := NewDirectThread(viewer, peer)

	m := direct(viewer, peer, "once")
	require.True(t, th.Merge(m))

	echo := *m
	assert.False(t, th.Merge(&echo))
	assert.Equal(t, 1, th.Len())
	assert.True(t, th.Contains(m.ID))
}

func TestThread_LoadThenAppendKeepsOrder(t *testing.T) {
	sender := uuid.New()
	th := NewThread[*BroadcastMessage](nil)

	first, _ := NewBroadcast(sender, "first")
	second, _ := NewBroadcast(sender, "second")
	third, _ := NewBroadcast(sender, "third")

	th.Load([]*BroadcastMessage{first, second})
	th.Merge(second)
	th.Merge(third)

	items := th.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Body)
	assert.Equal(t, "second", items[1].Body)
	assert.Equal(t, "third", items[2].Body)
}

func TestNormalizeBody(t *testing.T) {
	_, err := NormalizeBody("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = NormalizeBody("")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	body, err := NormalizeBody("  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello", body)
}
