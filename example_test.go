package goSession_test

import (
	"context"
	"errors"
	"fmt"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/session"
	"github.com/redis/go-redis/v9"
)

// ExampleNew builds a Manager on Redis with default settings.
func ExampleNew() {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})

	manager, err := goSession.New().
		WithRedis(rdb).
		Build()
	if err != nil {
		return
	}
	defer manager.Close()
}

// ExampleManager_ValidateSessionToken shows the create and validate round trip.
func ExampleManager_ValidateSessionToken() {
	manager, err := goSession.New().
		WithStore(session.NewMemoryStore()).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer manager.Close()
	ctx := context.Background()

	created, _ := manager.CreateSession(ctx)

	sess, err := manager.ValidateSessionToken(ctx, created.Token)
	fmt.Println(err == nil && sess.ID == created.ID)

	_, err = manager.ValidateSessionToken(ctx, created.ID+".forged")
	fmt.Println(errors.Is(err, goSession.ErrNotAuthenticated))
	// Output:
	// true
	// true
}

// ExampleManager_MetricsSnapshot reads in-process counters.
func ExampleManager_MetricsSnapshot() {
	manager, err := goSession.New().
		WithStore(session.NewMemoryStore()).
		Build()
	if err != nil {
		return
	}
	defer manager.Close()

	_, _ = manager.CreateSession(context.Background())
	fmt.Println(manager.MetricsSnapshot().Counters[goSession.MetricSessionCreated])
	// Output: 1
}
