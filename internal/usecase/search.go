package usecase

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/soccerlens/scout/internal/platform/querybuilder"
)

// minSearchRunes is the shortest text that triggers a remote search. One or
// two runes sit in a dead zone: the text is remembered but nothing is fetched
// and whatever is on screen stays there.
const minSearchRunes = 3

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseDefaultLoading Phase = "default_loading"
	PhaseDefaultLoaded  Phase = "default_loaded"
	PhaseSearchLoading  Phase = "search_loading"
	PhaseSearchLoaded   Phase = "search_loaded"
	PhaseError          Phase = "error"
)

type ConnectivityProber interface {
	Probe(ctx context.Context) bool
}

// Update is pushed to the listener after every phase or result change.
type Update struct {
	Phase    Phase
	Snapshot Snapshot
}

type SearchConfig struct {
	Players  player.Repository
	Prober   ConnectivityProber
	Logger   *logging.Logger
	Validate *validator.Validate
	PageSize int
	OnUpdate func(Update)
}

// SearchOrchestrator owns the browse/search flow. Every input change funnels
// into one dispatch path that stamps the request with a monotonic sequence
// number; a response only lands if its stamp still matches the latest
// dispatched one, so a slow early response can never overwrite a fast later
// one. The superseded request's context is also cancelled to stop wasting the
// connection, but cancellation is an optimization: the sequence check alone
// guarantees correctness.
type SearchOrchestrator struct {
	players  player.Repository
	prober   ConnectivityProber
	logger   *logging.Logger
	validate *validator.Validate
	pageSize int
	onUpdate func(Update)

	mu      sync.Mutex
	seq     uint64
	phase   Phase
	text    string
	filters querybuilder.Filters
	sortKey string
	sortDir querybuilder.SortDirection
	page    int
	cancel  context.CancelFunc

	results *resultState
}

func NewSearchOrchestrator(cfg SearchConfig) *SearchOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	validate := cfg.Validate
	if validate == nil {
		validate = validator.New()
	}
	pageSize := cfg.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &SearchOrchestrator{
		players:  cfg.Players,
		prober:   cfg.Prober,
		logger:   logger,
		validate: validate,
		pageSize: pageSize,
		onUpdate: cfg.OnUpdate,
		phase:    PhaseIdle,
		filters:  querybuilder.Filters{},
		page:     1,
		results:  newResultState(),
	}
}

func (o *SearchOrchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *SearchOrchestrator) Snapshot() Snapshot {
	return o.results.Snapshot()
}

func (o *SearchOrchestrator) Text() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.text
}

// Start probes connectivity and, when reachable, loads the default listing.
// An unreachable backend produces exactly one diagnostic and no fetch.
func (o *SearchOrchestrator) Start(ctx context.Context) {
	if o.prober != nil && !o.prober.Probe(ctx) {
		o.logger.WarnContext(ctx, "backend unreachable, skipping initial load")
		err := crerr.Mark(crerr.New("backend unreachable"), ErrDependencyUnavailable)
		o.mu.Lock()
		o.phase = PhaseError
		o.results.toError(err)
		o.mu.Unlock()
		o.notify()
		return
	}
	o.dispatch(ctx)
}

// SetText reacts to the search box. Empty text resets back to the default
// listing, one or two runes change nothing on screen, three or more dispatch
// a search.
func (o *SearchOrchestrator) SetText(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	o.mu.Lock()
	if text == o.text {
		o.mu.Unlock()
		return
	}
	o.text = text
	o.page = 1
	o.mu.Unlock()

	o.dispatch(ctx)
}

// SetSort selects a sort key. An empty direction resolves by the naming
// convention (name ascends, stats descend).
func (o *SearchOrchestrator) SetSort(ctx context.Context, key string, direction querybuilder.SortDirection) {
	o.mu.Lock()
	o.sortKey = strings.TrimSpace(key)
	o.sortDir = direction
	o.page = 1
	o.mu.Unlock()
	o.dispatch(ctx)
}

// SetFilters replaces the active filter set.
func (o *SearchOrchestrator) SetFilters(ctx context.Context, filters querybuilder.Filters) {
	o.mu.Lock()
	o.filters = filters.Clone()
	o.page = 1
	o.mu.Unlock()
	o.dispatch(ctx)
}

func (o *SearchOrchestrator) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	o.mu.Lock()
	o.page = page
	o.mu.Unlock()
	o.dispatch(ctx)
}

// Refresh re-runs the current query unchanged.
func (o *SearchOrchestrator) Refresh(ctx context.Context) {
	o.dispatch(ctx)
}

// dispatch is the single "what changed, should I fetch" decision point. The
// dead zone guard lives here so that filter and sort changes made while the
// text is one or two runes long hold the screen as-is too.
func (o *SearchOrchestrator) dispatch(ctx context.Context) {
	o.mu.Lock()
	if o.text != "" && utf8.RuneCountInString(o.text) < minSearchRunes {
		runes := utf8.RuneCountInString(o.text)
		o.mu.Unlock()
		o.logger.DebugContext(ctx, "search text below threshold, holding current results", "len", runes)
		return
	}
	searching := o.text != ""
	query := querybuilder.Query{
		Text:          o.text,
		Filters:       o.filters.Clone(),
		SortKey:       o.sortKey,
		SortDirection: o.sortDir,
		Page:          o.page,
		PageSize:      o.pageSize,
	}
	if err := o.validate.Struct(query); err != nil {
		o.phase = PhaseError
		o.results.toError(crerr.Mark(err, ErrInvalidInput))
		o.mu.Unlock()
		o.logger.WarnContext(ctx, "rejecting invalid query", "error", err)
		o.notify()
		return
	}

	if searching {
		o.phase = PhaseSearchLoading
	} else {
		o.phase = PhaseDefaultLoading
	}
	if o.cancel != nil {
		o.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.seq++
	seq := o.seq
	o.results.toLoading()
	o.mu.Unlock()

	o.notify()

	go o.run(reqCtx, seq, query, searching)
}

func (o *SearchOrchestrator) run(ctx context.Context, seq uint64, query querybuilder.Query, searching bool) {
	ctx, span := startSpan(ctx, "search.list_players")
	defer span.End()

	logger := o.logger.With("request_id", uuid.NewString(), "seq", seq)
	logger.DebugContext(ctx, "dispatching listing request",
		"search", query.Text, "sort_by", query.SortKey, "page", query.Page)

	page, err := o.players.ListPlayers(ctx, query)

	o.mu.Lock()
	if seq != o.seq {
		o.mu.Unlock()
		logger.DebugContext(ctx, "dropping superseded response")
		return
	}
	if err != nil {
		o.phase = PhaseError
		o.results.toError(mapBackendError(err))
		o.mu.Unlock()
		logger.WarnContext(ctx, "listing request failed", "error", err)
		o.notify()
		return
	}
	if searching {
		o.phase = PhaseSearchLoaded
	} else {
		o.phase = PhaseDefaultLoaded
	}
	o.results.toLoaded(page.Items, page.TotalCount)
	o.mu.Unlock()

	logger.DebugContext(ctx, "listing request resolved",
		"results", len(page.Items), "total", page.TotalCount)
	o.notify()
}

func (o *SearchOrchestrator) notify() {
	if o.onUpdate == nil {
		return
	}
	o.mu.Lock()
	phase := o.phase
	o.mu.Unlock()
	o.onUpdate(Update{Phase: phase, Snapshot: o.results.Snapshot()})
}
