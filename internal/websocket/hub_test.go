package chatws

import (
	"testing"
	"time"
)

func receiveOrTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestHubDeliversToEverySessionOfUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := NewClient(hub, nil, "42")
	second := NewClient(hub, nil, "42")
	other := NewClient(hub, nil, "9")
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	hub.PushToUser("42", []byte("hello"))

	if got := string(receiveOrTimeout(t, first.send)); got != "hello" {
		t.Fatalf("first session got %q", got)
	}
	if got := string(receiveOrTimeout(t, second.send)); got != "hello" {
		t.Fatalf("second session got %q", got)
	}
	select {
	case payload := <-other.send:
		t.Fatalf("other user received %q", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubIgnoresUsersWithoutSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Must not panic or block.
	hub.PushToUser("nobody", []byte("hello"))
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "42")
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.send:
		if open {
			t.Fatal("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	hub.PushToUser("42", []byte("hello"))
}

func waitForClosed(t *testing.T, client *Client) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		client.mu.Lock()
		closed := client.closed
		client.mu.Unlock()
		if closed {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for client shutdown")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWriteErrorToDeadClientDoesNotPanic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, "42")
	hub.Register(client)

	// Stall the client: fill its write buffer so the next write cannot land.
	for i := 0; i < cap(client.send); i++ {
		client.send <- []byte("backlog")
	}

	// First error write finds the buffer full and unregisters the client; the
	// run loop closes its send channel.
	writeError(client, "slow consumer")
	waitForClosed(t, client)

	// Further writes to the dead client must be dropped, not panic.
	writeError(client, "still slow")
	writeError(client, "and again")

	// Hub-side delivery to the same user must also survive the dead session.
	hub.PushToUser("42", []byte("hello"))
}
