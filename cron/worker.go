package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"medibook/config"
	"medibook/services/payment"

	"github.com/hibiken/asynq"
)

const TypePaymentSettle = "payment:settle"

// settlePayload is the task body for a scheduled settlement.
type settlePayload struct {
	TransactionID string `json:"transactionId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqScheduler implements payment.SettlementScheduler on a durable Redis
// queue, so a scheduled settlement survives a process restart.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler constructs the enqueue side of the settlement queue.
func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleSettlement enqueues a settle task to run after the delay.
func (s *AsynqScheduler) ScheduleSettlement(ctx context.Context, transactionID string, delay time.Duration) error {
	payload, err := json.Marshal(settlePayload{TransactionID: transactionID})
	if err != nil {
		return fmt.Errorf("failed to marshal settle payload: %w", err)
	}
	task := asynq.NewTask(TypePaymentSettle, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue settlement for %s: %w", transactionID, err)
	}
	return nil
}

// InitSettlementWorker runs the async worker in background.
func InitSettlementWorker(paymentSvc payment.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentSettle, handleSettleTask(paymentSvc))

	go func() {
		log.Println("[SettlementWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SettlementWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SettlementWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSettleTask(paymentSvc payment.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p settlePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SettleHandler] invalid payload: %v", err)
			return err
		}

		if err := paymentSvc.Settle(ctx, p.TransactionID); err != nil {
			// An unknown id cannot become settleable; don't retry it.
			if errors.Is(err, payment.ErrNotFound) {
				log.Printf("[SettleHandler] unknown transaction %s, dropping task", p.TransactionID)
				return nil
			}
			log.Printf("[SettleHandler] failed to settle %s: %v", p.TransactionID, err)
			return err
		}
		return nil
	}
}
