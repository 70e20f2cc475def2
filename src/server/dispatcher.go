package server

import (
	"context"
	"encoding/json"
	"time"

	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/models"
)

// -----------------------------------------------------------------------------
// Command Dispatcher
// -----------------------------------------------------------------------------

// exchangeToken is the one reserved inbound payload. Exact, case-sensitive.
const exchangeToken = "exchange"

const fetchFailedNotice = "exchange rates are currently unavailable"

// -----------------------------------------------------------------------------

type inboundKind int

const (
	chatMessage inboundKind = iota
	exchangeCommand
)

// inbound is the tagged classification of one text frame.
type inbound struct {
	kind inboundKind
	text string
}

func classify(text string) inbound {
	if text == exchangeToken {
		return inbound{kind: exchangeCommand}
	}
	return inbound{kind: chatMessage, text: text}
}

// -----------------------------------------------------------------------------

// Dispatcher routes inbound frames: chat text fans out to everyone, the
// exchange command triggers a bounded rate fetch whose result is broadcast in
// place of the original message.
type Dispatcher struct {
	registry   *Registry
	source     interfaces.IRateSource
	Logger     *logger.Logger
	currencies []string
	timeout    time.Duration
	now        func() time.Time
}

// -----------------------------------------------------------------------------

func NewDispatcher(registry *Registry, source interfaces.IRateSource, cfg *models.MConfig) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		source:     source,
		Logger:     logger.NewLogger("Dispatcher"),
		currencies: cfg.Exchange.Currencies,
		timeout:    time.Duration(cfg.Network.RequestTimeout) * time.Second,
		now:        time.Now,
	}
}

// -----------------------------------------------------------------------------

// Handle processes one inbound frame and returns, leaving the connection loop
// ready for the next message regardless of which branch ran.
func (d *Dispatcher) Handle(c Conn, identity string, text string) {
	switch in := classify(text); in.kind {
	case exchangeCommand:
		d.handleExchange(c)
	default:
		d.registry.Broadcast([]byte(identity + ": " + in.text))
	}
}

// -----------------------------------------------------------------------------

// handleExchange fetches today's rates and broadcasts the JSON rendering.
// On failure nothing is broadcast: the failure is logged and a notice goes
// back to the requester only. The loop stays alive either way.
func (d *Dispatcher) handleExchange(c Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	dateKey := models.DateKey(d.now())

	record, err := d.source.Fetch(ctx, dateKey, d.currencies)
	if err != nil {
		d.Logger.Error("Exchange fetch for %s failed: %v", dateKey, err)
		if sendErr := c.Send([]byte(fetchFailedNotice)); sendErr != nil {
			d.Logger.Warning("Failed to notify %s: %v", c.RemoteAddr(), sendErr)
		}
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		d.Logger.Error("Failed to render rate record for %s: %v", dateKey, err)
		return
	}

	d.registry.Broadcast(payload)
}
