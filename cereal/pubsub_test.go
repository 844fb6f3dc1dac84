package cereal

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pm "pfeifer.dev/polyproj/math"
)

func topic(t *testing.T) string {
	return fmt.Sprintf("polyprojTest%s%d", t.Name(), os.Getpid())
}

func TestWaitForSubscriber(t *testing.T) {
	name := topic(t)
	pub := NewQueryPublisher(name)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pub.WaitForSubscriber(ctx), context.DeadlineExceeded)

	sub := NewQuerySubscriber(name)
	defer sub.Close()
	require.NoError(t, pub.WaitForSubscriber(context.Background()))
}

func TestSubscriberReadMalformed(t *testing.T) {
	name := topic(t)
	pub := NewQueryPublisher(name)
	sub := NewQuerySubscriber(name)
	defer sub.Close()

	_, success, err := sub.Read()
	assert.False(t, success)
	assert.NoError(t, err)

	pub.Pub.Send([]byte{1, 2, 3})
	require.NoError(t, pub.Send(Query{ID: 3, Point: pm.NewPoint(1, 2, 3)}))

	_, success, err = sub.Read()
	assert.True(t, success)
	assert.Error(t, err)

	q, success, err := sub.Read()
	assert.True(t, success)
	require.NoError(t, err)
	assert.Equal(t, Query{ID: 3, Point: pm.NewPoint(1, 2, 3)}, q)

	_, success, _ = sub.Read()
	assert.False(t, success)
}
