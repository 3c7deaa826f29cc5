package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewCircuitBreakerRegistry(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
	}

	registry := NewCircuitBreakerRegistry(config)

	if registry == nil {
		t.Fatal("expected registry to be created")
	}
	if registry.breakers == nil {
		t.Error("expected breakers map to be initialized")
	}
	if registry.config != config {
		t.Error("expected config to be set")
	}
}

func TestCircuitBreakerRegistry_GetBreaker(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	// First call should create a new breaker
	breaker1 := registry.GetBreaker("test-service")
	if breaker1 == nil {
		t.Fatal("expected breaker to be created")
	}

	// Second call should return the same breaker
	breaker2 := registry.GetBreaker("test-service")
	if breaker1 != breaker2 {
		t.Error("expected same breaker instance")
	}

	// Different name should create different breaker
	breaker3 := registry.GetBreaker("other-service")
	if breaker1 == breaker3 {
		t.Error("expected different breaker for different name")
	}
}

func TestCircuitBreakerRegistry_Execute_Success(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	result, err := registry.Execute(ctx, "test-service", func() (any, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_Error(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	expectedErr := errors.New("test error")
	result, err := registry.Execute(ctx, "test-service", func() (any, error) {
		return nil, expectedErr
	})

	if err == nil {
		t.Error("expected error")
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_ContextCanceled(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := registry.Execute(ctx, "test-service", func() (any, error) {
		return "should not reach", nil
	})

	if err == nil {
		t.Error("expected error due to cancelled context")
	}
}

func TestCircuitBreakerRegistry_Status(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	_, _ = registry.Execute(ctx, "service-a", func() (any, error) {
		return "ok", nil
	})
	_, _ = registry.Execute(ctx, "service-b", func() (any, error) {
		return nil, errors.New("fail")
	})

	status := registry.Status()

	if len(status) != 2 {
		t.Errorf("expected 2 breakers in status, got %d", len(status))
	}
	if status["service-a"] != "closed" {
		t.Errorf("expected service-a closed, got %q", status["service-a"])
	}
	if status["service-b"] != "closed" {
		t.Errorf("expected service-b still closed after one failure, got %q", status["service-b"])
	}
}

func TestCircuitBreakerRegistry_TripsAfterFailures(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     1 * time.Second,
	}
	registry := NewCircuitBreakerRegistry(config)
	ctx := context.Background()

	// ReadyToTrip requires >= 5 requests with >= 50% failures
	for i := 0; i < 5; i++ {
		_, _ = registry.Execute(ctx, "failing-service", func() (any, error) {
			return nil, errors.New("fail")
		})
	}

	status := registry.Status()
	if status["failing-service"] != "open" {
		t.Errorf("expected breaker to be open, got %s", status["failing-service"])
	}

	// Next call should fail immediately without executing
	executed := false
	_, err := registry.Execute(ctx, "failing-service", func() (any, error) {
		executed = true
		return "should not execute", nil
	})

	if err == nil {
		t.Error("expected error due to open circuit breaker")
	}
	if executed {
		t.Error("function should not run while the breaker is open")
	}
	if err.Error() != "service failing-service unavailable: circuit breaker open" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWithCircuitBreaker_Success(t *testing.T) {
	// Reset global registry for test isolation
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	ctx := context.Background()

	result, err := WithCircuitBreaker(ctx, "test", func() (string, error) {
		return "hello", nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "hello" {
		t.Errorf("expected 'hello', got %s", result)
	}
}

func TestWithCircuitBreaker_Error(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	ctx := context.Background()
	expectedErr := errors.New("test error")

	result, err := WithCircuitBreaker(ctx, "test", func() (string, error) {
		return "", expectedErr
	})

	if err == nil {
		t.Error("expected error")
	}
	if result != "" {
		t.Errorf("expected empty string, got %s", result)
	}
}

func TestWithCircuitBreaker_TypedResults(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	ctx := context.Background()

	type payload struct {
		Value int
	}

	result, err := WithCircuitBreaker(ctx, "typed", func() (*payload, error) {
		return &payload{Value: 42}, nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result == nil || result.Value != 42 {
		t.Errorf("expected payload with value 42, got %+v", result)
	}
}

func TestCircuitBreakerRegistry_Concurrent(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			registry.GetBreaker("shared")
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if len(registry.Status()) != 1 {
		t.Errorf("expected exactly one breaker, got %d", len(registry.Status()))
	}
}
