package event

import (
	"testing"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(TopicBudgetsChanged, func(ev Event) {
		got = append(got, ev)
	})

	bus.Publish(Event{Topic: TopicBudgetsChanged, Reason: "add"})
	bus.Publish(Event{Topic: TopicTransactionsChanged, Reason: "add"})

	if len(got) != 1 {
		t.Fatalf("Expected 1 delivered event, got %d", len(got))
	}
	if got[0].Reason != "add" {
		t.Errorf("Expected reason 'add', got %q", got[0].Reason)
	}
}

func TestBus_MultipleSubscribersSameTopic(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	bus.Subscribe(TopicSessionChanged, func(Event) { first++ })
	bus.Subscribe(TopicSessionChanged, func(Event) { second++ })

	bus.Publish(Event{Topic: TopicSessionChanged})

	if first != 1 || second != 1 {
		t.Errorf("Expected both subscribers invoked once, got %d and %d", first, second)
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(TopicCategoriesChanged, func(Event) { calls++ })

	bus.Publish(Event{Topic: TopicCategoriesChanged})
	unsubscribe()
	bus.Publish(Event{Topic: TopicCategoriesChanged})

	if calls != 1 {
		t.Errorf("Expected 1 call after unsubscribe, got %d", calls)
	}
	if bus.SubscriberCount(TopicCategoriesChanged) != 0 {
		t.Errorf("Expected 0 remaining subscribers")
	}
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Topic: TopicTransactionsChanged})
}
