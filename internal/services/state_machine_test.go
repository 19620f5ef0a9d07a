package services

import (
	"testing"

	"concierge/internal/models/chat_models"
	"concierge/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func machineIn(state chat_models.AppState) *StateMachine {
	return &StateMachine{state: state}
}

func TestStateMachine_HappyPath(t *testing.T) {
	m := NewStateMachine()
	assert.Equal(t, chat_models.StateChatting, m.State())

	steps := []struct {
		trigger Trigger
		want    chat_models.AppState
	}{
		{TriggerPlanReceived, chat_models.StateVisualSummary},
		{TriggerApprove, chat_models.StateDetailedItinerary},
		{TriggerBackToSummary, chat_models.StateVisualSummary},
		{TriggerApprove, chat_models.StateDetailedItinerary},
		{TriggerProceedToConfirm, chat_models.StateConfirmation},
		{TriggerBackToItinerary, chat_models.StateDetailedItinerary},
		{TriggerProceedToConfirm, chat_models.StateConfirmation},
		{TriggerConfirmBooking, chat_models.StateConfirmed},
		{TriggerPlanAnother, chat_models.StateChatting},
	}
	for _, step := range steps {
		got, err := m.Fire(step.trigger, true)
		require.NoError(t, err, "trigger %s", step.trigger)
		assert.Equal(t, step.want, got)
	}
}

func TestStateMachine_SendMessageReturnsToChatting(t *testing.T) {
	for _, from := range []chat_models.AppState{
		chat_models.StateChatting,
		chat_models.StateVisualSummary,
		chat_models.StateDetailedItinerary,
		chat_models.StateConfirmation,
	} {
		m := machineIn(from)
		got, err := m.Fire(TriggerSendMessage, true)
		require.NoError(t, err)
		assert.Equal(t, chat_models.StateChatting, got, "from %s", from)
	}
}

func TestStateMachine_SendMessageRejectedWhenConfirmed(t *testing.T) {
	m := machineIn(chat_models.StateConfirmed)

	_, err := m.Fire(TriggerSendMessage, true)

	assert.ErrorIs(t, err, utils.ErrTransitionNotAllowed)
	assert.Equal(t, chat_models.StateConfirmed, m.State())
}

func TestStateMachine_PlanGuard(t *testing.T) {
	cases := []struct {
		from    chat_models.AppState
		trigger Trigger
	}{
		{chat_models.StateVisualSummary, TriggerApprove},
		{chat_models.StateDetailedItinerary, TriggerProceedToConfirm},
		{chat_models.StateConfirmation, TriggerBackToItinerary},
	}
	for _, tc := range cases {
		m := machineIn(tc.from)
		assert.False(t, m.Can(tc.trigger, false))

		got, err := m.Fire(tc.trigger, false)

		assert.ErrorIs(t, err, utils.ErrNoPlan)
		assert.Equal(t, tc.from, got)
		assert.Equal(t, tc.from, m.State())
	}
}

func TestStateMachine_UnknownTransitions(t *testing.T) {
	m := NewStateMachine()

	for _, trigger := range []Trigger{TriggerApprove, TriggerConfirmBooking, TriggerPlanAnother, TriggerBackToSummary} {
		_, err := m.Fire(trigger, true)
		assert.ErrorIs(t, err, utils.ErrTransitionNotAllowed, "trigger %s", trigger)
		assert.Equal(t, chat_models.StateChatting, m.State())
	}
}

func TestStateMachine_RefineFromSummary(t *testing.T) {
	m := machineIn(chat_models.StateVisualSummary)

	got, err := m.Fire(TriggerRefine, true)

	require.NoError(t, err)
	assert.Equal(t, chat_models.StateChatting, got)
}
