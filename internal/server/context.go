package server

import (
	"context"
	"sync"

	"github.com/dayour/Teams-MCP/internal/calendar"
	"github.com/dayour/Teams-MCP/internal/instrumentation"
	"github.com/dayour/Teams-MCP/internal/logging"
	"github.com/dayour/Teams-MCP/internal/schedule"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	calendarClients map[string]*calendar.Client    // Maps account name to Calendar client
	resolvers       map[string]*schedule.Resolver  // Maps account name to resolution engine
	detectors       map[string]*schedule.Detector  // Maps account name to conflict detector
	logger          logging.Logger
	metrics         *instrumentation.Metrics
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, logger logging.Logger) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if logger == nil {
		logger = logging.DefaultLogger()
	}

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		calendarClients: make(map[string]*calendar.Client),
		resolvers:       make(map[string]*schedule.Resolver),
		detectors:       make(map[string]*schedule.Detector),
		logger:          logger,
		shutdown:        false,
	}

	// Try to create default Calendar client, but don't fail if token is missing
	// Clients will be lazily initialized when first needed
	if calendar.HasToken() {
		client, err := calendar.NewClient(shutdownCtx)
		if err != nil {
			// Log but don't fail - will be re-attempted on first use
			logger.Warn("failed to create Calendar client for default account",
				logging.KeyAccount, "default",
				logging.KeyError, err.Error())
		} else {
			sc.calendarClients["default"] = client
		}
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the server logger
func (sc *ServerContext) Logger() logging.Logger {
	return sc.logger
}

// CalendarClientForAccount returns the Calendar client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no token
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.calendarClientLocked(account)
}

func (sc *ServerContext) calendarClientLocked(account string) *calendar.Client {
	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	if !calendar.HasTokenForAccount(account) {
		if sc.metrics != nil {
			sc.metrics.RecordOAuthAuth(sc.ctx, instrumentation.OAuthResultFailure)
		}
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		// Building the client refreshes the stored token, so a failure
		// here means the refresh was rejected.
		if sc.metrics != nil {
			sc.metrics.RecordOAuthAuth(sc.ctx, instrumentation.OAuthResultFailure)
			sc.metrics.RecordOAuthTokenRefresh(sc.ctx, instrumentation.OAuthResultFailure)
		}
		sc.logger.Warn("failed to create Calendar client",
			logging.KeyAccount, account,
			logging.KeyError, err.Error())
		return nil
	}

	if sc.metrics != nil {
		sc.metrics.RecordOAuthAuth(sc.ctx, instrumentation.OAuthResultSuccess)
		sc.metrics.RecordOAuthTokenRefresh(sc.ctx, instrumentation.OAuthResultSuccess)
	}
	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account.
// The cached scheduling engines for the account are dropped so they are
// rebuilt over the new client.
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
	delete(sc.detectors, account)
	delete(sc.resolvers, account)
}

// SetCalendarClient sets the Calendar client for the default account
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.SetCalendarClientForAccount("default", client)
}

// DetectorForAccount returns the conflict detector for a specific account.
// Returns nil if the account has no calendar access.
func (sc *ServerContext) DetectorForAccount(account string) *schedule.Detector {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.detectorLocked(account)
}

func (sc *ServerContext) detectorLocked(account string) *schedule.Detector {
	if detector, ok := sc.detectors[account]; ok {
		return detector
	}

	client := sc.calendarClientLocked(account)
	if client == nil {
		return nil
	}

	provider := calendar.NewScheduleProvider(client)
	detector := schedule.NewDetector(provider, sc.logger)
	sc.detectors[account] = detector
	return detector
}

// ResolverForAccount returns the resolution engine for a specific account.
// Returns nil if the account has no calendar access.
func (sc *ServerContext) ResolverForAccount(account string) *schedule.Resolver {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if resolver, ok := sc.resolvers[account]; ok {
		return resolver
	}

	detector := sc.detectorLocked(account)
	if detector == nil {
		return nil
	}

	searcher := schedule.NewSearcher(detector, sc.logger)
	resolver := schedule.NewResolver(searcher)
	sc.resolvers[account] = resolver
	return resolver
}

// SearcherForAccount returns a slot searcher for a specific account.
// Returns nil if the account has no calendar access.
func (sc *ServerContext) SearcherForAccount(account string) *schedule.Searcher {
	detector := sc.DetectorForAccount(account)
	if detector == nil {
		return nil
	}
	return schedule.NewSearcher(detector, sc.logger)
}

// SetMetrics sets the metrics recorder used for tool instrumentation
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
