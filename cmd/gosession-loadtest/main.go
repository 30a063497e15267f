// Command gosession-loadtest drives a Redis-backed Manager with concurrent
// validate and create/delete traffic and prints latency percentiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		sessions    = flag.Int("sessions", 100000, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gs", "session key prefix")
	)
	flag.Parse()

	if *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := goSession.DefaultConfig()
	cfg.Redis.Prefix = *prefix
	manager, err := goSession.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build manager: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	tokens := make([]string, *sessions)
	fmt.Printf("seeding %d sessions...\n", *sessions)
	startSeed := time.Now()
	for i := range tokens {
		created, err := manager.CreateSession(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create failed: %v\n", err)
			os.Exit(1)
		}
		tokens[i] = created.Token
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	validateStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		_, err := manager.ValidateSessionToken(ctx, tokens[r.IntN(len(tokens))])
		return err
	})
	churnStats := runPhase(*ops, *concurrency, func(*rand.Rand) error {
		created, err := manager.CreateSession(ctx)
		if err != nil {
			return err
		}
		return manager.DeleteSession(ctx, created.ID)
	})

	fmt.Println("---- results ----")
	printStats("validate", validateStats)
	printStats("create+delete", churnStats)

	snap := manager.MetricsSnapshot()
	fmt.Printf("counters: created=%d validated=%d deleted=%d store_errors=%d\n",
		snap.Counters[goSession.MetricSessionCreated],
		snap.Counters[goSession.MetricValidateSuccess],
		snap.Counters[goSession.MetricSessionDeleted],
		snap.Counters[goSession.MetricStoreError],
	)
}

func runPhase(ops, concurrency int, op func(*rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    atomic.Int64
		failures  atomic.Int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker uint64) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), worker*7919))
			local := make([]time.Duration, 0, ops/concurrency+1)
			for int(cursor.Add(1)) <= ops {
				t0 := time.Now()
				if err := op(r); err != nil {
					failures.Add(1)
				}
				local = append(local, time.Since(t0))
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
		}(uint64(w))
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures.Load())
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
