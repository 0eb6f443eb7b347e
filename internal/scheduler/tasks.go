package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskOrderWhatsApp notifies the shop about a new order over WhatsApp.
const TaskOrderWhatsApp = "orders.notify.whatsapp"

// OrderWhatsAppPayload carries a composed order notification. The message is
// built at publish time so the worker needs no database access.
type OrderWhatsAppPayload struct {
	OrderID     string `json:"orderId"`
	DisplayCode string `json:"displayCode"`
	Message     string `json:"message"`
}

func NewOrderWhatsAppTask(payload OrderWhatsAppPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderWhatsApp, data), nil
}

func ParseOrderWhatsAppPayload(task *asynq.Task) (OrderWhatsAppPayload, error) {
	var payload OrderWhatsAppPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderWhatsAppPayload{}, err
	}
	return payload, nil
}
