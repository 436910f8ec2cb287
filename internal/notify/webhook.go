package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petarpopovic013-oss/barbershop/internal/metrics"
)

// Event is the outbound booking notification. Date and Time are shop-local
// strings, not UTC-shifted instants, because the receiver formats them
// straight into a human message.
type Event struct {
	EventID string `json:"event_id"`

	ReservationID int64 `json:"reservation_id"`

	BarberName    string   `json:"barber_name"`
	ServiceNames  []string `json:"service_names"`
	TotalPriceRSD int64    `json:"total_price_rsd"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`

	Date string `json:"date"`
	Time string `json:"time"`

	Notes string `json:"notes,omitempty"`
}

// Dispatcher delivers events best-effort: a buffered queue drained by one
// worker. Delivery failures are logged and dropped; a full queue drops the
// event rather than block a booking response.
type Dispatcher struct {
	url    string
	client *http.Client
	queue  chan Event
	log    zerolog.Logger
}

func NewDispatcher(url string, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		queue: make(chan Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d.url == "" {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("event_id", ev.EventID).Msg("webhook queue full, dropping event")
	}
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.deliver(ev); err != nil {
			metrics.IncWebhookDelivery("failure")
			d.log.Error().Err(err).
				Str("event_id", ev.EventID).
				Int64("reservation_id", ev.ReservationID).
				Msg("webhook delivery failed")
			continue
		}
		metrics.IncWebhookDelivery("success")
	}
}

func (d *Dispatcher) deliver(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}

// Close stops the worker after the queue drains. Only tests need this.
func (d *Dispatcher) Close() {
	close(d.queue)
}
