package core

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSystemDispatchesToListeners(t *testing.T) {
	require.True(t, EventSystemInitialize())
	go ProcessEvents()

	var received atomic.Int32
	var lastKey atomic.Int32

	EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		received.Add(1)
		if event, ok := context.Data.(*KeyEvent); ok {
			lastKey.Store(int32(event.KeyCode))
		}
	})

	require.True(t, EventFire(EventContext{
		Type: EVENT_CODE_KEY_PRESSED,
		Data: &KeyEvent{KeyCode: KEY_SPACE},
	}))

	assert.Eventually(t, func() bool {
		return received.Load() == 1 && KeyCode(lastKey.Load()) == KEY_SPACE
	}, 2*time.Second, 5*time.Millisecond)

	// A second listener on the same code also fires.
	var second atomic.Int32
	EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		second.Add(1)
	})
	require.True(t, EventFire(EventContext{
		Type: EVENT_CODE_KEY_PRESSED,
		Data: &KeyEvent{KeyCode: KEY_P},
	}))
	assert.Eventually(t, func() bool {
		return received.Load() == 2 && second.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestEventFireUnknownCodeIsHarmless(t *testing.T) {
	require.True(t, EventSystemInitialize())
	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_TUNING_APPLIED}))
}

func TestEventRegisterRejectsNilListener(t *testing.T) {
	require.True(t, EventSystemInitialize())
	assert.False(t, EventRegister(EVENT_CODE_RESIZED, nil))
}
