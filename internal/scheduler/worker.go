package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	leadsrepo "prequal_backend/internal/leads/repository"
	"prequal_backend/internal/routing"
	"prequal_backend/platform/config"
	"prequal_backend/platform/logger"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  *leadsrepo.Repository
	router *routing.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, router *routing.Service, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leadsrepo.New(pool),
		router: router,
		log:    log,
	}

	mux.HandleFunc(TaskRoutingSweep, w.handleRoutingSweep)

	return w, nil
}

// handleRoutingSweep retries routing for prequalified leads that missed
// their in-call routing attempt. Each lead is routed independently; one
// failure does not stop the sweep.
func (w *Worker) handleRoutingSweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRoutingSweepPayload(task)
	if err != nil {
		return err
	}

	leads, err := w.leads.ListUnroutedPrequalified(ctx, payload.Limit)
	if err != nil {
		return fmt.Errorf("list unrouted leads: %w", err)
	}
	if len(leads) == 0 {
		return nil
	}

	w.log.Info("routing sweep started", "count", len(leads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, lead := range leads {
		leadID := lead.ID
		g.Go(func() error {
			if err := w.router.Route(gctx, leadID); err != nil {
				// Routing is idempotent, the next sweep picks this lead up again.
				w.log.Error("routing sweep failed for lead", "leadId", leadID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	w.log.Info("routing sweep finished", "count", len(leads))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
