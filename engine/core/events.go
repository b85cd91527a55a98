package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// The wave tuning file changed and new parameters were applied.
	EVENT_CODE_TUNING_APPLIED SystemEventCode = 0x10

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// KeyCode matches the GLFW key values for the keys the application
// reacts to; the platform layer does the translation.
type KeyCode int

const (
	KEY_SPACE  KeyCode = 32
	KEY_P      KeyCode = 80
	KEY_R      KeyCode = 82
	KEY_ESCAPE KeyCode = 256
)

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[SystemEventCode][]FnOnEvent
	queue      chan EventContext
	done       chan struct{}
	shutdown   sync.Once
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
			queue:      make(chan EventContext, 256),
			done:       make(chan struct{}),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.shutdown.Do(func() {
			close(eventState.done)
		})
	}
	return nil
}

// EventRegister adds a listener for the given code. Listeners are
// invoked in registration order from the ProcessEvents goroutine.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire enqueues an event for dispatch. Returns false if the event
// system is not initialized or the queue is saturated.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	select {
	case eventState.queue <- context:
		return true
	default:
		LogWarn("event queue full, dropping event code %d", context.Type)
		return false
	}
}

// ProcessEvents dispatches queued events until the event system shuts
// down. Run it on its own goroutine.
func ProcessEvents() {
	for {
		select {
		case context := <-eventState.queue:
			eventState.mutex.RLock()
			listeners := eventState.registered[context.Type]
			eventState.mutex.RUnlock()
			for _, listener := range listeners {
				listener(context)
			}
		case <-eventState.done:
			return
		}
	}
}
