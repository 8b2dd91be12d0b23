// Package submission drives one classify cycle: collect input, call the
// classification service and update the loading, error and results regions.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csheth/mailtriage/internal/classifier"
)

const (
	PDFUnsupportedMessage  = "PDF documents are not supported in this configuration."
	ConnectionErrorMessage = "Could not connect to the classification server."
)

// State is the visible phase of the most recent cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Failure classifies why a cycle ended in the error region.
type Failure int

const (
	FailureNone Failure = iota
	FailureUnsupportedInputFormat
	FailureRemoteClassification
	FailureTransport
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureUnsupportedInputFormat:
		return "unsupported_input_format"
	case FailureRemoteClassification:
		return "remote_classification_error"
	case FailureTransport:
		return "transport_failure"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

// Outcome describes how a cycle settled.
type Outcome struct {
	Cycle    uint64
	State    State
	Failure  Failure
	Payload  Payload
	Result   *classifier.Result
	Message  string
	Duration time.Duration
	// Stale is set when a newer cycle started first; nothing was rendered.
	Stale bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller logs to log.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller binds a trigger to the classify pipeline.
type Controller struct {
	client classifier.Client
	view   View
	log    *zap.Logger

	mu      sync.Mutex
	seq     uint64
	current uint64
	cancel  context.CancelFunc
	state   State
}

// New returns a controller in the idle state with every region hidden.
func New(client classifier.Client, view View, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		view:   view,
		log:    zap.NewNop(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	view.Loading.Hide()
	view.Error.Hide()
	view.Results.Hide()
	return c
}

// State returns the phase of the latest cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs a full cycle and blocks until it settles.
func (c *Controller) Submit(ctx context.Context, in Input) Outcome {
	return c.Begin(ctx, in).Run()
}

// Begin shows the loading region and hides error and results before
// returning. Any earlier cycle still in flight is cancelled and its result
// will be dropped.
func (c *Controller) Begin(ctx context.Context, in Input) *Cycle {
	cycleCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.current = c.seq
	c.cancel = cancel
	c.state = StateLoading

	c.view.Loading.Show()
	c.view.Error.Hide()
	c.view.Results.Hide()

	return &Cycle{
		id:         c.seq,
		requestID:  uuid.NewString(),
		ctx:        cycleCtx,
		cancel:     cancel,
		input:      in,
		controller: c,
		started:    time.Now(),
	}
}

// Cycle is one trigger → request → render sequence.
type Cycle struct {
	id         uint64
	requestID  string
	ctx        context.Context
	cancel     context.CancelFunc
	input      Input
	controller *Controller
	started    time.Time
}

func (cy *Cycle) ID() uint64 { return cy.id }

// Run resolves the payload, calls the classifier and renders the outcome.
// It must be called once.
func (cy *Cycle) Run() Outcome {
	defer cy.cancel()
	c := cy.controller
	log := c.log.With(zap.Uint64("cycle", cy.id), zap.String("request_id", cy.requestID))

	payload, err := ResolvePayload(cy.ctx, cy.input)
	switch {
	case errors.Is(err, ErrRejectedFormat):
		log.Info("attachment rejected", zap.String("reason", payload.Reason))
		return cy.fail(log, payload, FailureUnsupportedInputFormat, PDFUnsupportedMessage)
	case err != nil:
		log.Debug("payload resolution failed", zap.Error(err))
		return cy.fail(log, payload, FailureTransport, ConnectionErrorMessage)
	}
	if payload.Kind == IgnoredUnsupportedFile {
		log.Info("attachment ignored, submitting typed text", zap.String("reason", payload.Reason))
	}

	resp, err := c.client.Analyze(cy.ctx, payload.Text)
	if err != nil {
		log.Debug("analyze request failed", zap.Error(err))
		return cy.fail(log, payload, FailureTransport, ConnectionErrorMessage)
	}
	if message, failed := resp.Failure(); failed {
		return cy.fail(log, payload, FailureRemoteClassification, message)
	}
	if resp.Classification == nil {
		log.Debug("analyze response missing classification")
		return cy.fail(log, payload, FailureTransport, ConnectionErrorMessage)
	}
	return cy.succeed(log, payload, resp.Classification)
}

func (cy *Cycle) fail(log *zap.Logger, payload Payload, failure Failure, message string) Outcome {
	out := Outcome{
		Cycle:   cy.id,
		State:   StateError,
		Failure: failure,
		Payload: payload,
		Message: message,
	}
	return cy.settle(log, out, func(v View) {
		v.Loading.Hide()
		v.Results.Hide()
		v.Error.SetText(message)
		v.Error.Show()
	})
}

func (cy *Cycle) succeed(log *zap.Logger, payload Payload, result *classifier.Result) Outcome {
	out := Outcome{
		Cycle:   cy.id,
		State:   StateResults,
		Payload: payload,
		Result:  result,
	}
	return cy.settle(log, out, func(v View) {
		v.Loading.Hide()
		v.Error.Hide()
		v.Category.SetText(result.Category)
		v.Response.SetText(result.SuggestedResponse)
		v.Results.Show()
	})
}

func (cy *Cycle) settle(log *zap.Logger, out Outcome, render func(View)) Outcome {
	c := cy.controller
	out.Duration = time.Since(cy.started)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cy.id != c.current {
		out.Stale = true
		log.Debug("cycle superseded, dropping outcome", zap.Uint64("current", c.current))
		return out
	}
	render(c.view)
	c.state = out.State
	log.Info("cycle settled",
		zap.Stringer("state", out.State),
		zap.Stringer("failure", out.Failure),
		zap.Stringer("payload", out.Payload.Kind),
		zap.Duration("duration", out.Duration),
	)
	return out
}
