package checkout

import (
	"fmt"

	"roastery/internal/model"
)

// Step identifies a checkout step. Steps are strictly ordered: customer
// info, then shipping info, then payment.
type Step int

const (
	StepCustomerInfo Step = iota + 1
	StepShippingInfo
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepCustomerInfo:
		return "customer_info"
	case StepShippingInfo:
		return "shipping_info"
	case StepPayment:
		return "payment"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Session is the checkout step state machine. Forward transitions require
// the current step's data to validate; skipping ahead is impossible because
// each submit method refuses to run before its step is reached. Going back
// is always allowed and keeps previously entered data.
type Session struct {
	step     Step
	customer *model.CustomerInfo
	shipping *model.ShippingInfo
}

// NewSession starts a checkout at the customer info step.
func NewSession() *Session {
	return &Session{step: StepCustomerInfo}
}

// Step returns the current step.
func (s *Session) Step() Step {
	return s.step
}

// CustomerInfo returns the validated customer info, or nil before the
// customer step has been completed.
func (s *Session) CustomerInfo() *model.CustomerInfo {
	return s.customer
}

// ShippingInfo returns the validated shipping info, or nil before the
// shipping step has been completed.
func (s *Session) ShippingInfo() *model.ShippingInfo {
	return s.shipping
}

// SubmitCustomerInfo validates the first step and advances to shipping.
// Resubmitting from a later step re-validates and keeps the session on the
// furthest step already reached.
func (s *Session) SubmitCustomerInfo(info model.CustomerInfo) error {
	if errs := ValidateCustomerInfo(info); errs != nil {
		return errs
	}
	s.customer = &info
	if s.step < StepShippingInfo {
		s.step = StepShippingInfo
	}
	return nil
}

// SubmitShippingInfo validates the second step and advances to payment.
// It refuses to run before the customer step has been completed.
func (s *Session) SubmitShippingInfo(info model.ShippingInfo) error {
	if s.step < StepShippingInfo {
		return fmt.Errorf("cannot submit shipping info at step %s", s.step)
	}
	if errs := ValidateShippingInfo(info); errs != nil {
		return errs
	}
	s.shipping = &info
	if s.step < StepPayment {
		s.step = StepPayment
	}
	return nil
}

// Back moves one step backwards, keeping entered data. At the first step
// it is a no-op.
func (s *Session) Back() {
	if s.step > StepCustomerInfo {
		s.step--
	}
}

// ReadyForPayment reports whether both data-entry steps have validated.
func (s *Session) ReadyForPayment() bool {
	return s.step == StepPayment && s.customer != nil && s.shipping != nil
}
