package disruptor

import (
	"testing"
	"time"
)

func TestSingleProducerBuilder_Build(t *testing.T) {
	testCases := []struct {
		name    string
		builder *SingleProducerBuilder[int]
		wantErr bool
	}{
		{
			name:    "valid size",
			builder: NewSingleProducerBuilder[int]().WithSize(8),
			wantErr: false,
		},
		{
			name:    "invalid size - not power of two",
			builder: NewSingleProducerBuilder[int]().WithSize(7),
			wantErr: true,
		},
		{
			name:    "invalid size - zero",
			builder: NewSingleProducerBuilder[int]().WithSize(0),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sp, err := tc.builder.Build()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Build() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && sp == nil {
				t.Fatalf("Build() returned nil SingleProducer, want non-nil")
			}
		})
	}
}

func TestSingleProducer_ProduceAndConsume(t *testing.T) {
	type testData struct{ id int }

	sp, err := NewSingleProducerBuilder[testData]().WithSize(4).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sp.Produce(testData{1})
	sp.Produce(testData{2})

	if got := sp.Consume(); got.id != 1 {
		t.Fatalf("Consume() = %+v, want id 1", got)
	}
	if got := sp.Consume(); got.id != 2 {
		t.Fatalf("Consume() = %+v, want id 2", got)
	}
}

func TestSingleProducer_ProducerBlocksWhenFull(t *testing.T) {
	sp, err := NewSingleProducerBuilder[int]().WithSize(2).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sp.Produce(1)
	sp.Produce(2)

	produced := make(chan struct{})
	go func() {
		sp.Produce(3) // ring is full; blocks until Consume frees a slot.
		close(produced)
	}()

	select {
	case <-produced:
		t.Fatalf("Produce() returned before the ring had free capacity")
	case <-time.After(20 * time.Millisecond):
	}

	if got := sp.Consume(); got != 1 {
		t.Fatalf("Consume() = %d, want 1", got)
	}

	select {
	case <-produced:
	case <-time.After(time.Second):
		t.Fatalf("Produce() never returned after a slot freed up")
	}

	if got := sp.Consume(); got != 2 {
		t.Fatalf("Consume() = %d, want 2", got)
	}
	if got := sp.Consume(); got != 3 {
		t.Fatalf("Consume() = %d, want 3", got)
	}
}

func TestSingleProducer_ConsumeBlocksWhenEmpty(t *testing.T) {
	sp, err := NewSingleProducerBuilder[int]().WithSize(4).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	consumed := make(chan int, 1)
	go func() {
		consumed <- sp.Consume()
	}()

	select {
	case <-consumed:
		t.Fatalf("Consume() returned before anything was produced")
	case <-time.After(20 * time.Millisecond):
	}

	sp.Produce(7)

	select {
	case got := <-consumed:
		if got != 7 {
			t.Fatalf("Consume() = %d, want 7", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("Consume() never returned after Produce")
	}
}
