package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

func TestNewSyncEventBus(t *testing.T) {
	bus := NewSyncEventBus()

	if bus == nil {
		t.Fatal("NewSyncEventBus returned nil")
	}

	if bus.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestPublishSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var received domain.Event
	var callCount int

	subID := bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
		received = event
		callCount++
	})

	if subID == "" {
		t.Fatal("Subscribe returned empty subscription ID")
	}

	song := domain.Song{ID: "abc", FilePath: "/music/a.mp3", Title: "A"}
	bus.Publish(domain.NewSongStartedEvent(song))

	if callCount != 1 {
		t.Errorf("Expected handler to be called once, got %d", callCount)
	}

	if received == nil {
		t.Fatal("Handler did not receive event")
	}

	if received.Type() != domain.EventSongStarted {
		t.Errorf("Expected EventSongStarted, got %s", received.Type())
	}

	got := received.(domain.SongStartedEvent)
	if got.Song.FilePath != "/music/a.mp3" {
		t.Errorf("Expected path /music/a.mp3, got %s", got.Song.FilePath)
	}
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var calls [3]int32
	for i := range calls {
		i := i
		bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
			atomic.AddInt32(&calls[i], 1)
		})
	}

	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))

	for i := range calls {
		if atomic.LoadInt32(&calls[i]) != 1 {
			t.Errorf("Handler %d: expected 1 call, got %d", i, calls[i])
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var callCount int32
	subID := bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))
	bus.Unsubscribe(subID)
	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("Expected 1 call after unsubscribe, got %d", callCount)
	}

	// Unknown IDs are a no-op
	bus.Unsubscribe("sub-unknown")
}

func TestSubscribeAll(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var callCount int32
	bus.SubscribeAll(func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))
	bus.Publish(domain.NewMuteToggledEvent(true))
	bus.Publish(domain.NewLoopToggledEvent(false))

	if atomic.LoadInt32(&callCount) != 3 {
		t.Errorf("Expected wildcard handler to see 3 events, got %d", callCount)
	}
}

func TestHasSubscribers(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	if bus.HasSubscribers(domain.EventSongStarted) {
		t.Error("Fresh bus should have no subscribers")
	}

	subID := bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {})
	if !bus.HasSubscribers(domain.EventSongStarted) {
		t.Error("Expected subscribers after Subscribe")
	}

	bus.Unsubscribe(subID)
	if bus.HasSubscribers(domain.EventSongStarted) {
		t.Error("Expected no subscribers after Unsubscribe")
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var secondCalled bool
	bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
		panic("boom")
	})
	bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
		secondCalled = true
	})

	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))

	if !secondCalled {
		t.Error("Handler after the panicking one was not called")
	}
}

func TestClose(t *testing.T) {
	bus := NewSyncEventBus()

	var callCount int32
	bus.Subscribe(domain.EventSongStarted, func(event domain.Event) {
		atomic.AddInt32(&callCount, 1)
	})

	if err := bus.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Publishing after close is dropped
	bus.Publish(domain.NewSongStartedEvent(domain.Song{FilePath: "/music/a.mp3"}))
	if atomic.LoadInt32(&callCount) != 0 {
		t.Errorf("Expected 0 calls after close, got %d", callCount)
	}

	if err := bus.Close(); err == nil {
		t.Error("Second Close should return an error")
	}
}

func TestConcurrentPublish(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var callCount int64
	bus.Subscribe(domain.EventSongProgress, func(event domain.Event) {
		atomic.AddInt64(&callCount, 1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(domain.NewSongProgressEvent(0, 0))
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt64(&callCount) != 1000 {
		t.Errorf("Expected 1000 calls, got %d", callCount)
	}
}
