package scheduler

import (
	"context"
	"fmt"

	"timeless_backend/internal/whatsapp"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker processes queued tasks. It runs as its own binary (cmd/worker) next
// to the API server.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender *whatsapp.Client
	shopTo string
	log    *logger.Logger
}

// NewWorker builds the asynq server and registers task handlers.
func NewWorker(cfg config.SchedulerConfig, storefront config.StorefrontConfig, sender *whatsapp.Client, log *logger.Logger) (*Worker, error) {
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
		server: server,
		mux:    mux,
		sender: sender,
		shopTo: storefront.GetShopWhatsAppNumber(),
		log:    log,
	}

	mux.HandleFunc(TaskOrderWhatsApp, w.handleOrderWhatsApp)

	return w, nil
}

// Run processes tasks until the context is cancelled.
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

func (w *Worker) handleOrderWhatsApp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderWhatsAppPayload(task)
	if err != nil {
		return err
	}

	if w.sender == nil {
		w.log.Info("whatsapp gateway not configured, dropping notification",
			"order_id", payload.OrderID, "display_code", payload.DisplayCode)
		return nil
	}

	if err := w.sender.SendMessage(ctx, w.shopTo, payload.Message); err != nil {
		// Returning the error lets asynq retry with backoff.
		return fmt.Errorf("send order notification: %w", err)
	}

	w.log.OrderEvent("order_notification_sent", payload.OrderID, payload.DisplayCode)
	return nil
}
