package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/service"
)

// PaymentEvent is the payment collaborator's verdict for a booking. The
// engine consumes this signal; it never talks to the card processor itself.
type PaymentEvent struct {
	BookingID uint   `json:"booking_id"`
	Status    string `json:"status"` // succeeded | failed | refunded
}

type PaymentConsumer struct {
	svc service.BookingService
}

func NewPaymentConsumer(svc service.BookingService) *PaymentConsumer {
	return &PaymentConsumer{svc: svc}
}

// Start listens for payment events and applies payment_status transitions.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var event PaymentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	var status models.PaymentStatus
	switch event.Status {
	case "succeeded":
		status = models.PaymentPaid
	case "refunded":
		status = models.PaymentRefunded
	case "failed":
		// A failed charge leaves the booking unpaid; collection retries are
		// the payment collaborator's problem.
		log.Printf("[PaymentConsumer] payment failed for booking %d", event.BookingID)
		msg.Ack(false)
		return
	default:
		log.Printf("[PaymentConsumer] unknown payment status %q for booking %d", event.Status, event.BookingID)
		msg.Nack(false, false)
		return
	}

	if err := pc.svc.ApplyPaymentResult(context.Background(), event.BookingID, status); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			log.Printf("[PaymentConsumer] booking %d not found, dropping message", event.BookingID)
			msg.Nack(false, false)
			return
		}
		log.Printf("[PaymentConsumer] failed to apply payment for booking %d: %v", event.BookingID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[PaymentConsumer] booking %d payment %s", event.BookingID, event.Status)
	msg.Ack(false)
}
