package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"

	"github.com/lmousom/puid"
)

func main() {
	fmt.Println("PUID Benchmark")
	fmt.Println("==============")
	fmt.Printf("Go %s on %s/%s, %d cores\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Println()

	builder, err := puid.NewBuilder().Prefix("bench")
	if err != nil {
		log.Fatalf("builder: %v", err)
	}

	runGenerationBenchmark(builder)
	runEntropyBenchmark(builder)
	runConcurrentBenchmark(builder)
	runOrderingTest(builder)
	runCollisionTest(builder)
	runLengthComparison(builder)
}

func runGenerationBenchmark(builder puid.Builder) {
	fmt.Println("Generation Performance")
	fmt.Println("---------------------")

	const iterations = 500000

	tests := []struct {
		name string
		fn   func() error
	}{
		{"PUID", func() error {
			_, err := builder.Build()
			return err
		}},
		{"UUID v4", func() error {
			_ = uuid.New().String()
			return nil
		}},
		{"ULID", func() error {
			_ = ulid.Make().String()
			return nil
		}},
		{"KSUID", func() error {
			_ = "bench-" + ksuid.New().String()
			return nil
		}},
	}

	for _, test := range tests {
		// Warmup
		for i := 0; i < 1000; i++ {
			_ = test.fn()
		}

		start := time.Now()
		for i := 0; i < iterations; i++ {
			if err := test.fn(); err != nil {
				log.Printf("Error in %s: %v", test.name, err)
			}
		}
		elapsed := time.Since(start)

		opsPerSec := float64(iterations) / elapsed.Seconds()
		nsPerOp := elapsed.Nanoseconds() / int64(iterations)

		fmt.Printf("%-12s %8.0f ops/sec  %6d ns/op\n", test.name, opsPerSec, nsPerOp)
	}
	fmt.Println()
}

func runEntropyBenchmark(builder puid.Builder) {
	fmt.Println("Entropy Cost")
	fmt.Println("------------")

	const iterations = 200000

	for _, n := range []uint8{0, 12, 24, 64} {
		b := builder.Entropy(n)
		start := time.Now()
		for i := 0; i < iterations; i++ {
			_ = b.MustBuild()
		}
		elapsed := time.Since(start)

		fmt.Printf("entropy %-3d %8.0f ops/sec\n", n, float64(iterations)/elapsed.Seconds())
	}
	fmt.Println()
}

func runConcurrentBenchmark(builder puid.Builder) {
	fmt.Println("Concurrent Generation")
	fmt.Println("--------------------")

	const workers = 4
	const perWorker = 50000

	run := func(fn func()) float64 {
		var wg sync.WaitGroup
		start := time.Now()
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					fn()
				}
			}()
		}
		wg.Wait()
		return float64(workers*perWorker) / time.Since(start).Seconds()
	}

	puidRate := run(func() { _ = builder.MustBuild() })
	uuidRate := run(func() { _ = uuid.New().String() })
	ulidRate := run(func() { _ = ulid.Make().String() })

	fmt.Printf("PUID: %8.0f IDs/sec (%d workers)\n", puidRate, workers)
	fmt.Printf("UUID: %8.0f IDs/sec (%d workers)\n", uuidRate, workers)
	fmt.Printf("ULID: %8.0f IDs/sec (%d workers)\n", ulidRate, workers)
	fmt.Println()
}

func runOrderingTest(builder puid.Builder) {
	fmt.Println("Temporal Ordering")
	fmt.Println("-----------------")

	const count = 50

	// one id per millisecond so the time component always differs
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = builder.MustBuild()
		time.Sleep(2 * time.Millisecond)
	}

	shuffled := make([]string, count)
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	sort.Strings(shuffled)

	ordered := true
	for i := range ids {
		if ids[i] != shuffled[i] {
			ordered = false
			break
		}
	}

	fmt.Printf("Generated %d IDs, 2ms apart\n", count)
	fmt.Printf("String sort matches creation order: %v\n", ordered)
	fmt.Println("Note: ordering holds while the base-36 time keeps the same width")
	fmt.Println("and ignores the counter, so same-millisecond IDs are unordered.")
	fmt.Println()
}

func runCollisionTest(builder puid.Builder) {
	fmt.Println("Collision Test")
	fmt.Println("--------------")

	const count = 500000
	seen := make(map[string]bool, count)
	collisions := 0

	start := time.Now()
	for i := 0; i < count; i++ {
		id := builder.MustBuild()
		if seen[id] {
			collisions++
		} else {
			seen[id] = true
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("Generated: %d IDs in %v\n", count, elapsed)
	fmt.Printf("Collisions: %d\n", collisions)
	fmt.Printf("Unique rate: %.4f%%\n", float64(len(seen))/float64(count)*100)
	fmt.Println()
}

func runLengthComparison(builder puid.Builder) {
	fmt.Println("String Length")
	fmt.Println("-------------")

	fmt.Printf("PUID:  %2d chars  %s\n", len(builder.MustBuild()), builder.MustBuild())
	u := uuid.New().String()
	fmt.Printf("UUID:  %2d chars  %s\n", len(u), u)
	l := ulid.Make().String()
	fmt.Printf("ULID:  %2d chars  %s\n", len(l), l)
	k := "bench-" + ksuid.New().String()
	fmt.Printf("KSUID: %2d chars  %s\n", len(k), k)
	fmt.Println()
}
