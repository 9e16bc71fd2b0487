package checkout

import (
	"errors"
	"time"
)

// ProcessingDelay is how long the simulated payment takes.
const ProcessingDelay = 2 * time.Second

var (
	ErrNoMethod     = errors.New("checkout: payment method is required")
	ErrWrongStep    = errors.New("checkout: operation not allowed in current step")
	ErrUnknownPlan  = errors.New("checkout: unknown plan")
	ErrUnknownMeans = errors.New("checkout: unknown payment method")
)

type Step string

const (
	StepPlan       Step = "plan"
	StepPayment    Step = "payment"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

type Plan string

const (
	PlanAnnual  Plan = "annual"
	PlanMonthly Plan = "monthly"
)

func (p Plan) Price() string {
	switch p {
	case PlanMonthly:
		return "R$ 14,90 / month"
	default:
		return "R$ 119,90 / year"
	}
}

func (p Plan) Label() string {
	if p == PlanMonthly {
		return "Monthly"
	}
	return "Annual (best value)"
}

type Method string

const (
	MethodCard Method = "card"
	MethodPix  Method = "pix"
)

// Flow is a simulated purchase. No payment is ever made.
type Flow struct {
	step      Step
	plan      Plan
	method    Method
	closed    bool
	onSuccess func()
	succeeded bool
}

func NewFlow(onSuccess func()) *Flow {
	return &Flow{step: StepPlan, plan: PlanAnnual, onSuccess: onSuccess}
}

func (f *Flow) Step() Step       { return f.step }
func (f *Flow) Plan() Plan       { return f.plan }
func (f *Flow) Method() Method   { return f.method }
func (f *Flow) Closed() bool     { return f.closed }
func (f *Flow) Processing() bool { return f.step == StepProcessing }

func (f *Flow) SelectPlan(p Plan) error {
	if f.step != StepPlan {
		return ErrWrongStep
	}
	if p != PlanAnnual && p != PlanMonthly {
		return ErrUnknownPlan
	}
	f.plan = p
	return nil
}

// Continue moves from plan selection to payment.
func (f *Flow) Continue() error {
	if f.step != StepPlan {
		return ErrWrongStep
	}
	f.step = StepPayment
	return nil
}

// Back returns from payment to plan selection.
func (f *Flow) Back() error {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	f.step = StepPlan
	return nil
}

func (f *Flow) SelectMethod(m Method) error {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if m != MethodCard && m != MethodPix {
		return ErrUnknownMeans
	}
	f.method = m
	return nil
}

// Pay starts processing. The caller schedules Complete after ProcessingDelay.
func (f *Flow) Pay() error {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if f.method == "" {
		return ErrNoMethod
	}
	f.step = StepProcessing
	return nil
}

// Complete finishes processing and fires the success hook once.
func (f *Flow) Complete() error {
	if f.step != StepProcessing || f.closed {
		return ErrWrongStep
	}
	f.step = StepSuccess
	if !f.succeeded {
		f.succeeded = true
		if f.onSuccess != nil {
			f.onSuccess()
		}
	}
	return nil
}

// Close dismisses the flow. A pending Complete after Close is rejected.
func (f *Flow) Close() {
	f.closed = true
}
