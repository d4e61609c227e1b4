package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"oraculo/config"
	slotRepo "oraculo/database/repository/slot"
	"oraculo/seeder"
	"oraculo/services/notification"
)

const (
	TypeEmailSend = "email:send"
	TypeSlotSeed  = "slots:seed"
)

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqDispatcher queues emails on the background worker.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewDispatcher creates the producing side of the email queue.
func NewDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{client: asynq.NewClient(redisOpt())}
}

func (d *AsynqDispatcher) EnqueueEmail(ctx context.Context, email notification.Email) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeEmailSend, payload)
	_, err = d.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	return err
}

// InitWorker runs the async worker and the daily seed schedule in background.
func InitWorker(sender notification.Sender, slots slotRepo.SlotRepository) {
	opts := redisOpt()

	srv := asynq.NewServer(
		opts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, handleEmailTask(sender))
	mux.HandleFunc(TypeSlotSeed, handleSeedTask(slots))

	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	startSeedSchedule()
}

// startSeedSchedule tops the slot horizon up once a day.
func startSeedSchedule() {
	scheduler := asynq.NewScheduler(redisOpt(), &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@daily", asynq.NewTask(TypeSlotSeed, nil)); err != nil {
		log.Printf("[Worker] Failed to register seed schedule: %v", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[Worker] Seed scheduler stopped: %v", err)
		}
	}()
}

func handleEmailTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var email notification.Email
		if err := json.Unmarshal(task.Payload(), &email); err != nil {
			log.Printf("[EmailHandler] Invalid payload: %v", err)
			return err
		}
		if err := sender.Send(ctx, email); err != nil {
			log.Printf("[EmailHandler] Failed to send %q to %s: %v", email.Subject, email.To, err)
			return err
		}
		return nil
	}
}

func handleSeedTask(slots slotRepo.SlotRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		return seeder.Run(ctx, slots)
	}
}
