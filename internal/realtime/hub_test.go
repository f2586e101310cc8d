package realtime

import "testing"

func TestClientMatches(t *testing.T) {
	client := &Client{principalID: "user-1"}
	client.subs = []Subscription{
		{Table: "jobs"},
		{Table: "applications", EntityID: "app-7"},
		{Table: "notifications"},
	}

	cases := []struct {
		name  string
		event Event
		want  bool
	}{
		{"subscribed table", Event{Table: "jobs", EntityID: "j-1"}, true},
		{"unsubscribed table", Event{Table: "interviews", EntityID: "i-1"}, false},
		{"entity filter hit", Event{Table: "applications", EntityID: "app-7"}, true},
		{"entity filter miss", Event{Table: "applications", EntityID: "app-8"}, false},
		{"own notification", Event{Table: "notifications", EntityID: "n-1", RecipientID: "user-1"}, true},
		{"foreign notification", Event{Table: "notifications", EntityID: "n-2", RecipientID: "user-2"}, false},
	}
	for _, tc := range cases {
		if got := client.matches(tc.event); got != tc.want {
			t.Errorf("%s: matches=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBroadcastSkipsNonMatchingClients(t *testing.T) {
	hub := NewHub(nil)
	matching := &Client{principalID: "user-1", send: make(chan Event, 1)}
	matching.subs = []Subscription{{Table: "jobs"}}
	other := &Client{principalID: "user-2", send: make(chan Event, 1)}
	other.subs = []Subscription{{Table: "applications"}}
	hub.register(matching)
	hub.register(other)

	hub.Broadcast(Event{Table: "jobs", EntityID: "j-1"})

	select {
	case event := <-matching.send:
		if event.EntityID != "j-1" {
			t.Fatalf("entity %q, want j-1", event.EntityID)
		}
	default:
		t.Fatal("subscribed client received nothing")
	}
	select {
	case <-other.send:
		t.Fatal("unsubscribed client received an event")
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{principalID: "user-1", send: make(chan Event, 1)}
	slow.subs = []Subscription{{Table: "jobs"}}
	hub.register(slow)

	hub.Broadcast(Event{Table: "jobs", EntityID: "j-1"})
	hub.Broadcast(Event{Table: "jobs", EntityID: "j-2"})

	if got := len(slow.send); got != 1 {
		t.Fatalf("buffered %d events, want 1", got)
	}
}
