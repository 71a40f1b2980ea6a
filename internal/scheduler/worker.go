package scheduler

import (
	"context"
	"fmt"

	"mediagent_backend/platform/config"
	"mediagent_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Enricher runs the enrichment pipeline for a stored lead.
type Enricher interface {
	EnrichStoredLead(ctx context.Context, leadID string) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	enricher Enricher
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, enricher Enricher, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
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
		server:   server,
		mux:      mux,
		enricher: enricher,
		log:      log,
	}

	mux.HandleFunc(TaskLeadEnrichment, w.handleLeadEnrichment)

	return w, nil
}

func (w *Worker) handleLeadEnrichment(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadEnrichmentPayload(task)
	if err != nil {
		return err
	}
	if payload.LeadID == "" {
		return fmt.Errorf("lead enrichment task missing lead id")
	}

	w.log.Info("processing lead enrichment", "lead_id", payload.LeadID)
	if err := w.enricher.EnrichStoredLead(ctx, payload.LeadID); err != nil {
		w.log.Error("lead enrichment failed", "lead_id", payload.LeadID, "error", err)
		return err
	}
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
