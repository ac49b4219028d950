package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/external/soccerlens"
	"github.com/soccerlens/scout/internal/config"
	"github.com/soccerlens/scout/internal/interfaces/termui"
	"github.com/soccerlens/scout/internal/platform/cache"
	"github.com/soccerlens/scout/internal/platform/logging"
	"github.com/soccerlens/scout/internal/platform/querybuilder"
	"github.com/soccerlens/scout/internal/platform/resilience"
	"github.com/soccerlens/scout/internal/usecase"
	cli "github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	client := soccerlens.NewClient(soccerlens.ClientConfig{
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		ProbeTimeout: cfg.ProbeTimeout,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	app := &application{
		cfg:          cfg,
		logger:       logger,
		client:       client,
		players:      usecase.NewPlayerService(client, nil, logger),
		reference:    usecase.NewReferenceService(client, store, logger),
		leaderboards: usecase.NewLeaderboardService(client, cfg.LeaderboardWorkers, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, termui.Alert(err))
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

type application struct {
	cfg          config.Config
	logger       *logging.Logger
	client       *soccerlens.Client
	players      *usecase.PlayerService
	reference    *usecase.ReferenceService
	leaderboards *usecase.LeaderboardService
}

func (a *application) command() *cli.Command {
	return &cli.Command{
		Name:  "scout",
		Usage: "browse and search SoccerLens player statistics",
		Commands: []*cli.Command{
			a.browseCommand(),
			a.searchCommand(),
			a.playerCommand(),
			a.similarCommand(),
			a.leaderboardCommand(),
			a.sortsCommand(),
			a.filtersCommand(),
			a.doctorCommand(),
		},
	}
}

func (a *application) browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "interactive search session",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return a.browse(ctx)
		},
	}
}

func (a *application) searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "one-shot listing query",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sort", Usage: "sort key, e.g. goals"},
			&cli.StringFlag{Name: "order", Usage: "asc or desc (default follows the key)"},
			&cli.StringSliceFlag{Name: "filter", Usage: "field=value, repeatable"},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "page-size", Value: 0, Usage: "results per page (default from config)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filters, err := parseFilterArgs(cmd.StringSlice("filter"))
			if err != nil {
				return err
			}
			pageSize := int(cmd.Int("page-size"))
			if pageSize == 0 {
				pageSize = a.cfg.PageSize
			}

			page, err := a.players.List(ctx, querybuilder.Query{
				Text:          strings.Join(cmd.Args().Slice(), " "),
				Filters:       filters,
				SortKey:       cmd.String("sort"),
				SortDirection: querybuilder.SortDirection(cmd.String("order")),
				Page:          int(cmd.Int("page")),
				PageSize:      pageSize,
			})
			if err != nil {
				return err
			}
			fmt.Println(termui.PlayerList(usecase.Snapshot{
				Status:     usecase.StatusLoaded,
				Players:    page.Items,
				TotalCount: page.TotalCount,
			}))
			return nil
		},
	}
}

func (a *application) playerCommand() *cli.Command {
	return &cli.Command{
		Name:      "player",
		Usage:     "show one player's full statistics card",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			p, err := a.players.Detail(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(termui.PlayerCard(p))
			return nil
		},
	}
}

func (a *application) similarCommand() *cli.Command {
	return &cli.Command{
		Name:      "similar",
		Usage:     "find players similar to the given one",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Value: "hybrid", Usage: "statistical, nlp or hybrid"},
			&cli.IntFlag{Name: "limit", Value: 10},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			result, err := a.players.Similar(ctx, id, cmd.String("method"), int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			fmt.Println(termui.SimilarResult(result))
			return nil
		},
	}
}

func (a *application) leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "top players for one or more statistics",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "stat", Usage: "statistic key, repeatable"},
			&cli.IntFlag{Name: "limit", Value: 10},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			boards, err := a.leaderboards.Collect(ctx, cmd.StringSlice("stat"), int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			fmt.Println(termui.Leaderboards(boards))
			return nil
		},
	}
}

func (a *application) sortsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sorts",
		Usage: "list the advertised sort options",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "restrict to one category"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out, err := a.reference.SortCatalog(ctx, cmd.String("category"))
			if err != nil {
				return err
			}
			fmt.Println(termui.Catalog(out))
			return nil
		},
	}
}

func (a *application) filtersCommand() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "list filterable positions, competitions, teams and nations",
		Action: func(ctx context.Context, _ *cli.Command) error {
			facets, err := a.reference.Facets(ctx)
			if err != nil {
				return err
			}
			fmt.Println(termui.Facets(facets))
			return nil
		},
	}
}

func (a *application) doctorCommand() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "check backend connectivity",
		Action: func(ctx context.Context, _ *cli.Command) error {
			fmt.Printf("backend: %s\n", a.cfg.BaseURL)
			if !a.client.Probe(ctx) {
				return crerr.Mark(crerr.New("backend unreachable"), usecase.ErrDependencyUnavailable)
			}
			fmt.Println("reachable")
			return nil
		},
	}
}

// browse runs the interactive loop. Plain input is search text; slash
// commands adjust sort, filters and paging.
func (a *application) browse(ctx context.Context) error {
	orchestrator := usecase.NewSearchOrchestrator(usecase.SearchConfig{
		Players:  a.client,
		Prober:   a.client,
		Logger:   a.logger,
		PageSize: a.cfg.PageSize,
		OnUpdate: func(update usecase.Update) {
			switch update.Phase {
			case usecase.PhaseError:
				fmt.Println(termui.Alert(update.Snapshot.Err))
				if update.Snapshot.HasData() {
					fmt.Println(termui.PlayerList(update.Snapshot))
				}
			case usecase.PhaseDefaultLoaded, usecase.PhaseSearchLoaded:
				fmt.Println(termui.PlayerList(update.Snapshot))
			}
		},
	})

	fmt.Println("type a name to search, /sort <key> [asc|desc], /filter <field>=<value>, /page <n>, /reload, /quit")
	orchestrator.Start(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if ctx.Err() != nil {
			break
		}
		switch {
		case line == "/quit" || line == "/q":
			return nil
		case line == "/reload":
			orchestrator.Refresh(ctx)
		case line == "/filter":
			orchestrator.SetFilters(ctx, querybuilder.Filters{})
		case strings.HasPrefix(line, "/sort "):
			fields := strings.Fields(strings.TrimPrefix(line, "/sort "))
			direction := querybuilder.SortDirection("")
			if len(fields) > 1 {
				direction = querybuilder.SortDirection(fields[1])
			}
			orchestrator.SetSort(ctx, fields[0], direction)
		case strings.HasPrefix(line, "/filter "):
			filters, err := parseFilterArgs(strings.Fields(strings.TrimPrefix(line, "/filter ")))
			if err != nil {
				fmt.Println(termui.Alert(err))
				continue
			}
			orchestrator.SetFilters(ctx, filters)
		case strings.HasPrefix(line, "/page "):
			page, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/page ")))
			if err != nil {
				fmt.Println(termui.Alert(crerr.Mark(err, usecase.ErrInvalidInput)))
				continue
			}
			orchestrator.SetPage(ctx, page)
		default:
			orchestrator.SetText(ctx, line)
		}
	}
	return scanner.Err()
}

func parseFilterArgs(args []string) (querybuilder.Filters, error) {
	filters := querybuilder.Filters{}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, crerr.Mark(crerr.Newf("filter %q must look like field=value", arg), usecase.ErrInvalidInput)
		}
		filters[strings.TrimSpace(field)] = strings.TrimSpace(value)
	}
	return filters, nil
}

func idArg(cmd *cli.Command) (int64, error) {
	raw := strings.TrimSpace(cmd.Args().First())
	if raw == "" {
		return 0, crerr.Mark(crerr.New("a player id argument is required"), usecase.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, crerr.Mark(crerr.Wrapf(err, "invalid player id %q", raw), usecase.ErrInvalidInput)
	}
	return id, nil
}
