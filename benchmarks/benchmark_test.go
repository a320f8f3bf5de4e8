package benchmark_test

import (
	"sync"
	"testing"

	disruptor "github.com/unihoper/disruptor"
	smartystreets "github.com/smartystreets-prototypes/go-disruptor"
)

type object struct{ _ [16]byte }

// a consumer function that just accepts an object
// without needing to deal with ring buffer internals.
func consume[T any](item T) {
	_ = item
}

// consumer to be used by the smartystreets disruptor.
type smartystreetsConsumer struct {
	mask       int64
	ringBuffer []object
}

func (c smartystreetsConsumer) Consume(lower, upper int64) {
	for seq := lower; seq <= upper; seq++ {
		consume(c.ringBuffer[seq&c.mask])
	}
}

func BenchmarkSmartystreets_1_20(b *testing.B) {
	ringBuffer := make([]object, 1<<20)
	mask := int64((1 << 20) - 1)
	ring := smartystreets.New(
		smartystreets.WithCapacity(1<<20),
		smartystreets.WithConsumerGroup(smartystreetsConsumer{mask, ringBuffer}),
	)
	b.ResetTimer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < b.N; i++ {
			sequence := ring.Reserve(1)
			ringBuffer[sequence&mask] = object{}
			ring.Commit(sequence, sequence)
		}
		_ = ring.Close()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		ring.Read()
	}()
	wg.Wait()
}

// BenchmarkSingleProducer_1_20 exercises this module's pull-queue wrapper
// over the single-producer Sequencer core, the direct successor to the
// teacher's fivevee.Disruptor.Produce/LoopConsume benchmark.
func BenchmarkSingleProducer_1_20(b *testing.B) {
	sp, _ := disruptor.NewSingleProducerBuilder[object]().WithSize(1 << 20).Build()
	b.ResetTimer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < b.N; i++ {
			sp.Produce(object{})
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < b.N; i++ {
			consume(sp.Consume())
		}
	}()
	wg.Wait()
}

// BenchmarkParallelDistributor_1_20_TwoHandlers exercises the fan-out
// composition layer the teacher never had: one internal multi-producer
// ring feeding two independent handlers, each on its own goroutine.
func BenchmarkParallelDistributor_1_20_TwoHandlers(b *testing.B) {
	d, _ := disruptor.NewParallelDistributor[object](1 << 20)
	for i := 0; i < 2; i++ {
		d.AddHandler(disruptor.HandlerFunc[object](func(item *object) {
			consume(*item)
		}))
	}
	d.Start()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := object{}
		d.Distribute(&v)
	}
	d.Signal(disruptor.DefaultStopSignal)
	d.Join()
}

func BenchmarkChannel_1_20(b *testing.B) {
	c := make(chan object, 1<<20)
	for i := 0; i < 1<<19; i++ {
		c <- object{}
	}
	b.ResetTimer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < b.N; i++ {
			c <- object{}
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < (1<<19)+b.N; i++ {
			consume(<-c)
		}
	}()
	wg.Wait()
}
