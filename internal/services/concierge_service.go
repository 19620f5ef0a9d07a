package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
	"concierge/internal/models/request_models"
	"concierge/internal/models/response_models"
	"concierge/pkg/hub"
	"concierge/pkg/utils"

	"github.com/google/uuid"
)

const (
	EventMessageUpdated = "message.updated"
	EventStateChanged   = "state.changed"
	EventPlanReplaced   = "plan.replaced"
	EventImagesUpdated  = "images.updated"
	EventBusyChanged    = "busy.changed"
)

const chatInitTimeout = 30 * time.Second

type Action string

const (
	ActionApprove       Action = "approve"
	ActionRefine        Action = "refine"
	ActionBackToSummary Action = "back-to-summary"
	ActionProceed       Action = "proceed"
	ActionBack          Action = "back"
	ActionConfirm       Action = "confirm"
	ActionPlanAnother   Action = "plan-another"
)

var actionTriggers = map[Action]Trigger{
	ActionApprove:       TriggerApprove,
	ActionRefine:        TriggerRefine,
	ActionBackToSummary: TriggerBackToSummary,
	ActionProceed:       TriggerProceedToConfirm,
	ActionBack:          TriggerBackToItinerary,
	ActionConfirm:       TriggerConfirmBooking,
	ActionPlanAnother:   TriggerPlanAnother,
}

type ConciergeServiceInterface interface {
	BeginTurn(text string) (*Turn, error)
	SendMessage(ctx context.Context, text string) error
	Act(action Action) (chat_models.AppState, error)
	UpdatePreferences(patch request_models.PreferencesPatch) (chat_models.Preferences, error)
	ToggleAccommodation(option string) (chat_models.Preferences, error)
	Reorder(req request_models.ReorderRequest) (*plan_models.Plan, error)
	LoadSharedPlan(plan *plan_models.Plan) error
	Snapshot() response_models.Snapshot
	Plan() *plan_models.Plan
	Images() response_models.ImagesResponse
	TrackImageDisplayed(ctx context.Context, index int) error
}

// ConciergeService owns the single conversation: the chat session, messages, preferences, the
// plan and the active view.
type ConciergeService struct {
	photos  PhotoServiceInterface
	events  hub.Publisher
	store   *PlanStore
	images  *ImageCoordinator
	machine *StateMachine

	mu       sync.Mutex
	session  utils.ChatSession
	initErr  error
	messages []chat_models.Message
	prefs    chat_models.Preferences
	busy     bool
	epoch    uint64
}

// NewConciergeService opens the chat session once. A failure is recorded as a standing error
// message and every later turn is rejected with ErrChatNotInitialized.
func NewConciergeService(
	transport utils.ChatTransportInterface,
	photos PhotoServiceInterface,
	events hub.Publisher,
) ConciergeServiceInterface {
	return newConciergeService(transport, photos, events)
}

func newConciergeService(
	transport utils.ChatTransportInterface,
	photos PhotoServiceInterface,
	events hub.Publisher,
) *ConciergeService {
	store := NewPlanStore()
	s := &ConciergeService{
		photos:  photos,
		events:  events,
		store:   store,
		images:  NewImageCoordinator(store, photos),
		machine: NewStateMachine(),
		prefs:   chat_models.DefaultPreferences(),
	}
	s.images.OnUpdate(func(images []chat_models.ItineraryImage) {
		s.publish(EventImagesUpdated, response_models.ImagesResponse{Images: images})
	})

	ctx, cancel := context.WithTimeout(context.Background(), chatInitTimeout)
	defer cancel()
	session, err := transport.StartChat(ctx, SystemPrompt)
	if err != nil {
		log.Printf("Error initializing chat session: %v", err)
		s.initErr = err
		s.messages = []chat_models.Message{newAssistantMessage(
			fmt.Sprintf("There was an error initializing the AI Concierge: %v", err), true)}
		return s
	}
	s.session = session
	s.messages = []chat_models.Message{newAssistantMessage(GreetingMessage, false)}
	return s
}

func newAssistantMessage(summary string, isError bool) chat_models.Message {
	return chat_models.Message{
		ID:        uuid.NewString(),
		Sender:    chat_models.SenderAssistant,
		Summary:   summary,
		IsError:   isError,
		CreatedAt: time.Now(),
	}
}

// Turn is one user message and the assistant reply streaming into its placeholder.
type Turn struct {
	svc                *ConciergeService
	session            utils.ChatSession
	epoch              uint64
	prompt             string
	UserMessageID      string
	AssistantMessageID string
}

// BeginTurn records the user message and an empty assistant placeholder and marks the
// conversation busy. The reply is produced by Run.
func (s *ConciergeService) BeginTurn(text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is empty", utils.ErrInvalidInput)
	}

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, utils.ErrChatNotInitialized
	}
	if s.busy {
		s.mu.Unlock()
		return nil, utils.ErrTurnInFlight
	}
	prompt, err := ComposePrompt(s.prefs, s.store.Plan(), text)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("compose prompt: %w", err)
	}
	prev := s.machine.State()
	state, err := s.machine.Fire(TriggerSendMessage, s.store.HasPlan())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	user := chat_models.Message{ID: uuid.NewString(), Sender: chat_models.SenderUser, Summary: text, CreatedAt: time.Now()}
	placeholder := newAssistantMessage("", false)
	placeholder.Streaming = true
	s.messages = append(s.messages, user, placeholder)
	s.busy = true
	turn := &Turn{
		svc:                s,
		session:            s.session,
		epoch:              s.epoch,
		prompt:             prompt,
		UserMessageID:      user.ID,
		AssistantMessageID: placeholder.ID,
	}
	s.mu.Unlock()

	s.publish(EventMessageUpdated, user)
	s.publish(EventMessageUpdated, placeholder)
	s.publish(EventBusyChanged, true)
	if state != prev {
		s.publish(EventStateChanged, response_models.StateResponse{State: state})
	}
	return turn, nil
}

// Run streams the reply into the placeholder. A failure turns the placeholder into an error
// message; the conversation stays usable either way.
func (t *Turn) Run(ctx context.Context) error {
	defer t.svc.endTurn()

	stream, err := t.session.SendMessageStream(ctx, t.prompt)
	if err != nil {
		t.svc.failTurn(t, err)
		return err
	}
	defer stream.Close()

	asm := NewStreamAssembler()
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.svc.failTurn(t, err)
			return err
		}
		t.svc.updateLiveSummary(t, asm.Push(fragment))
	}
	t.svc.finishTurn(t, asm.Finish())
	return nil
}

func (s *ConciergeService) SendMessage(ctx context.Context, text string) error {
	turn, err := s.BeginTurn(text)
	if err != nil {
		return err
	}
	return turn.Run(ctx)
}

// messageIndex must be called with s.mu held.
func (s *ConciergeService) messageIndex(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ConciergeService) updateLiveSummary(t *Turn, live string) {
	s.mu.Lock()
	if t.epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	i := s.messageIndex(t.AssistantMessageID)
	if i < 0 || s.messages[i].Summary == live {
		s.mu.Unlock()
		return
	}
	s.messages[i].Summary = live
	msg := s.messages[i]
	s.mu.Unlock()
	s.publish(EventMessageUpdated, msg)
}

func (s *ConciergeService) finishTurn(t *Turn, res SplitResult) {
	s.mu.Lock()
	if t.epoch != s.epoch {
		s.mu.Unlock()
		log.Printf("discarding reply for message %s from an earlier conversation", t.AssistantMessageID)
		return
	}
	i := s.messageIndex(t.AssistantMessageID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	env := plan_models.ParseEnvelope(res.JSON)
	s.messages[i].Summary = res.Summary
	s.messages[i].JSON = res.JSON
	s.messages[i].Streaming = false
	if env != nil {
		s.messages[i].Kind = env.Kind
	}
	msg := s.messages[i]

	var (
		newPlan      *plan_models.Plan
		stateChanged bool
		state        = s.machine.State()
	)
	if env != nil && env.Plan != nil {
		s.store.ReplacePlan(env.Plan)
		newPlan = env.Plan.Clone()
		next, err := s.machine.Fire(TriggerPlanReceived, true)
		if err != nil {
			log.Printf("plan received in state %s: %v", state, err)
		}
		stateChanged = next != state
		state = next
	}
	s.mu.Unlock()

	s.publish(EventMessageUpdated, msg)
	if newPlan != nil {
		s.publish(EventPlanReplaced, newPlan)
	}
	if stateChanged {
		s.publish(EventStateChanged, response_models.StateResponse{State: state})
	}
	s.refreshImages(state)
}

func (s *ConciergeService) failTurn(t *Turn, err error) {
	log.Printf("Error during chat turn: %v", err)
	s.mu.Lock()
	if t.epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	i := s.messageIndex(t.AssistantMessageID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.messages[i].Summary = fmt.Sprintf("My apologies, I seem to have encountered an error: %v", err)
	s.messages[i].IsError = true
	s.messages[i].Streaming = false
	s.messages[i].JSON = nil
	msg := s.messages[i]
	s.mu.Unlock()
	s.publish(EventMessageUpdated, msg)
}

func (s *ConciergeService) endTurn() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	s.publish(EventBusyChanged, false)
}

// Act applies a user navigation action to the view state.
func (s *ConciergeService) Act(action Action) (chat_models.AppState, error) {
	trigger, ok := actionTriggers[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", utils.ErrInvalidInput, action)
	}

	s.mu.Lock()
	prev := s.machine.State()
	state, err := s.machine.Fire(trigger, s.store.HasPlan())
	if err != nil {
		s.mu.Unlock()
		return state, err
	}
	if trigger == TriggerPlanAnother {
		s.epoch++
		s.messages = []chat_models.Message{}
		s.prefs = chat_models.DefaultPreferences()
		s.store.Clear()
	}
	s.mu.Unlock()

	if trigger == TriggerPlanAnother {
		s.publish(EventPlanReplaced, nil)
	}
	if state != prev {
		s.publish(EventStateChanged, response_models.StateResponse{State: state})
	}
	s.refreshImages(state)
	return state, nil
}

func (s *ConciergeService) refreshImages(state chat_models.AppState) {
	s.images.Refresh(state)
}

func (s *ConciergeService) UpdatePreferences(patch request_models.PreferencesPatch) (chat_models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := MergePreferences(s.prefs, patch)
	if err != nil {
		return s.prefs, err
	}
	s.prefs = next
	return next, nil
}

func (s *ConciergeService) ToggleAccommodation(option string) (chat_models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := ToggleAccommodation(s.prefs, option)
	if err != nil {
		return s.prefs, err
	}
	s.prefs = next
	return next, nil
}

// Reorder moves a segment on the summary board.
func (s *ConciergeService) Reorder(req request_models.ReorderRequest) (*plan_models.Plan, error) {
	s.mu.Lock()
	if s.machine.State() != chat_models.StateVisualSummary {
		state := s.machine.State()
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: reorder is only available on the summary board, not in %s", utils.ErrTransitionNotAllowed, state)
	}
	plan, err := s.store.ApplyReorder(req)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publish(EventPlanReplaced, plan)
	return plan, nil
}

// LoadSharedPlan installs a plan decoded from a share link and opens the summary board.
func (s *ConciergeService) LoadSharedPlan(plan *plan_models.Plan) error {
	if plan == nil {
		return utils.ErrNoPlan
	}
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return utils.ErrTurnInFlight
	}
	prev := s.machine.State()
	if prev == chat_models.StateConfirmed {
		s.mu.Unlock()
		return fmt.Errorf("%w: start a new trip before loading a shared plan", utils.ErrTransitionNotAllowed)
	}
	s.store.ReplacePlan(plan)
	s.machine.Reset()
	state, err := s.machine.Fire(TriggerPlanReceived, true)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(EventPlanReplaced, plan.Clone())
	if state != prev {
		s.publish(EventStateChanged, response_models.StateResponse{State: state})
	}
	return nil
}

func (s *ConciergeService) Snapshot() response_models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := response_models.Snapshot{
		State:       s.machine.State(),
		Messages:    append([]chat_models.Message{}, s.messages...),
		Plan:        s.store.Plan(),
		Images:      s.imageStatus(),
		Busy:        s.busy,
		Preferences: s.prefs,
	}
	snap.Preferences.AccommodationTypes = append([]string{}, s.prefs.AccommodationTypes...)
	if s.initErr != nil {
		snap.InitError = s.initErr.Error()
	}
	return snap
}

func (s *ConciergeService) Plan() *plan_models.Plan {
	return s.store.Plan()
}

func (s *ConciergeService) Images() response_models.ImagesResponse {
	return s.imageStatus()
}

func (s *ConciergeService) imageStatus() response_models.ImagesResponse {
	images, known := s.store.Images()
	if !s.store.HasPlan() {
		return response_models.ImagesResponse{Images: []chat_models.ItineraryImage{}}
	}
	if !known {
		return response_models.ImagesResponse{Loading: true}
	}
	return response_models.ImagesResponse{Images: images}
}

// TrackImageDisplayed sends the provider's download notification for the image at index.
// Delivery problems are logged and never returned.
func (s *ConciergeService) TrackImageDisplayed(ctx context.Context, index int) error {
	images, known := s.store.Images()
	if !known {
		return fmt.Errorf("%w: images are still loading", utils.ErrInvalidInput)
	}
	if index < 0 || index >= len(images) {
		return fmt.Errorf("%w: no image at position %d", utils.ErrInvalidInput, index)
	}
	downloadURL := images[index].DownloadURL
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.photos.TrackDownload(ctx, downloadURL); err != nil {
			log.Printf("Failed to track photo download %s: %v", downloadURL, err)
		}
	}()
	return nil
}

func (s *ConciergeService) publish(eventType string, data interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, data)
	}
}
