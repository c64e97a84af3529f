package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/service"
)

// TopicMessageEvents carries engagement events toward the tracking path.
const TopicMessageEvents = "message_events"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// MessageEventJob is the payload published for each engagement event.
type MessageEventJob struct {
	CampaignID string             `json:"campaign_id"`
	MessageID  string             `json:"message_id"`
	Event      model.MessageEvent `json:"event"`
}

// InMemoryQueue is an in-process pub/sub queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartMessageEventSubscriber wires engagement events into the engine.
// Tracking is a no-op for unknown ids, so jobs never retry.
func StartMessageEventSubscriber(q Queue, svc *service.OutreachService) {
	err := q.Subscribe(TopicMessageEvents, func(payload any) error {
		job, ok := payload.(MessageEventJob)
		if !ok {
			log.Println("⚠️ invalid payload type, expected MessageEventJob")
			return nil
		}

		svc.TrackMessagePerformance(job.CampaignID, job.MessageID, job.Event)
		return nil
	})
	if err != nil {
		log.Println("⚠️ failed to start subscriber for", TopicMessageEvents, ":", err)
	}
}
