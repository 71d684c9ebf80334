package server

import (
	"context"
	"testing"

	"github.com/dayour/Teams-MCP/internal/instrumentation"
)

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Context() == nil {
		t.Error("expected non-nil context")
	}
	if sc.Logger() == nil {
		t.Error("expected non-nil logger")
	}
	if sc.IsShutdown() {
		t.Error("new context should not be shutdown")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("context should be shutdown")
	}

	// Shutdown should be idempotent
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestServerContext_UnauthenticatedAccount(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	// An account with no stored token has no client and no engines.
	const account = "no-such-account"
	if client := sc.CalendarClientForAccount(account); client != nil {
		t.Error("expected nil client for unauthenticated account")
	}
	if detector := sc.DetectorForAccount(account); detector != nil {
		t.Error("expected nil detector for unauthenticated account")
	}
	if resolver := sc.ResolverForAccount(account); resolver != nil {
		t.Error("expected nil resolver for unauthenticated account")
	}
	if searcher := sc.SearcherForAccount(account); searcher != nil {
		t.Error("expected nil searcher for unauthenticated account")
	}
}

func TestServerContext_UnauthenticatedAccountRecordsAuthFailure(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	// Zero-value metrics recorder: the auth failure record must be a safe
	// no-op and the lookup must still report the missing token.
	sc.SetMetrics(&instrumentation.Metrics{})
	if client := sc.CalendarClientForAccount("no-such-account"); client != nil {
		t.Error("expected nil client for unauthenticated account")
	}
}

func TestServerContext_Metrics(t *testing.T) {
	sc, err := NewServerContext(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Metrics() != nil {
		t.Error("metrics should be nil until set")
	}

	m := &instrumentation.Metrics{}
	sc.SetMetrics(m)
	if sc.Metrics() != m {
		t.Error("Metrics() should return the recorder that was set")
	}
}
