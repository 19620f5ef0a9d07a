package services

import (
	"fmt"

	"concierge/internal/models/chat_models"
	"concierge/pkg/utils"
)

type Trigger string

const (
	TriggerPlanReceived     Trigger = "plan_received"
	TriggerApprove          Trigger = "approve"
	TriggerSendMessage      Trigger = "send_message"
	TriggerRefine           Trigger = "refine"
	TriggerBackToSummary    Trigger = "back_to_summary"
	TriggerProceedToConfirm Trigger = "proceed_to_confirm"
	TriggerBackToItinerary  Trigger = "back_to_itinerary"
	TriggerConfirmBooking   Trigger = "confirm_booking"
	TriggerPlanAnother      Trigger = "plan_another"
)

type transitionKey struct {
	from    chat_models.AppState
	trigger Trigger
}

var transitions = map[transitionKey]chat_models.AppState{
	{chat_models.StateChatting, TriggerPlanReceived}:              chat_models.StateVisualSummary,
	{chat_models.StateVisualSummary, TriggerApprove}:              chat_models.StateDetailedItinerary,
	{chat_models.StateVisualSummary, TriggerRefine}:               chat_models.StateChatting,
	{chat_models.StateDetailedItinerary, TriggerBackToSummary}:    chat_models.StateVisualSummary,
	{chat_models.StateDetailedItinerary, TriggerProceedToConfirm}: chat_models.StateConfirmation,
	{chat_models.StateConfirmation, TriggerBackToItinerary}:       chat_models.StateDetailedItinerary,
	{chat_models.StateConfirmation, TriggerConfirmBooking}:        chat_models.StateConfirmed,
	{chat_models.StateConfirmed, TriggerPlanAnother}:              chat_models.StateChatting,
}

// StateMachine selects the active view. It is not safe for concurrent use; the concierge
// service serializes access to it.
type StateMachine struct {
	state chat_models.AppState
}

func NewStateMachine() *StateMachine {
	return &StateMachine{state: chat_models.StateChatting}
}

func (m *StateMachine) State() chat_models.AppState {
	return m.state
}

// Fire applies trigger. hasPlan reports whether a plan is currently stored; states that render the
// plan cannot be entered without one. On error the state is unchanged.
func (m *StateMachine) Fire(trigger Trigger, hasPlan bool) (chat_models.AppState, error) {
	next, ok := m.next(trigger)
	if !ok {
		return m.state, fmt.Errorf("%w: %s from %s", utils.ErrTransitionNotAllowed, trigger, m.state)
	}
	if !hasPlan && requiresPlan(next) {
		return m.state, fmt.Errorf("%w: %s needs a plan", utils.ErrNoPlan, next)
	}
	m.state = next
	return m.state, nil
}

// Can reports whether Fire would succeed without changing anything.
func (m *StateMachine) Can(trigger Trigger, hasPlan bool) bool {
	next, ok := m.next(trigger)
	return ok && (hasPlan || !requiresPlan(next))
}

func (m *StateMachine) next(trigger Trigger) (chat_models.AppState, bool) {
	if trigger == TriggerSendMessage {
		if m.state == chat_models.StateConfirmed {
			return m.state, false
		}
		return chat_models.StateChatting, true
	}
	next, ok := transitions[transitionKey{m.state, trigger}]
	return next, ok
}

func (m *StateMachine) Reset() {
	m.state = chat_models.StateChatting
}

func requiresPlan(s chat_models.AppState) bool {
	return s == chat_models.StateDetailedItinerary || s == chat_models.StateConfirmation
}
