package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"prequal_backend/internal/events"
	"prequal_backend/internal/intake/domain"
	"prequal_backend/internal/intake/ports"
	"prequal_backend/internal/intake/repository"
	"prequal_backend/internal/intake/transport"
	"prequal_backend/platform/apperr"
	"prequal_backend/platform/logger"
)

var serviceNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeLeadStore struct {
	leadID      uuid.UUID
	createCalls int
	created     []domain.LeadSnapshot
	updates     map[uuid.UUID]domain.LeadSnapshot
	createErr   error
}

func (f *fakeLeadStore) CreateLead(_ context.Context, snap domain.LeadSnapshot) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.createCalls++
	f.created = append(f.created, snap)
	return f.leadID, nil
}

func (f *fakeLeadStore) UpdateLead(_ context.Context, leadID uuid.UUID, snap domain.LeadSnapshot) error {
	f.updates[leadID] = snap
	return nil
}

type fakeRouter struct {
	routed []uuid.UUID
}

func (f *fakeRouter) Route(_ context.Context, leadID uuid.UUID) error {
	f.routed = append(f.routed, leadID)
	return nil
}

type fakeMatcher struct {
	numbers map[string]uuid.UUID
	tokens  map[string]uuid.UUID
}

func (f *fakeMatcher) MatchInboundNumber(_ context.Context, number string) (uuid.UUID, bool, error) {
	id, ok := f.numbers[number]
	return id, ok, nil
}

func (f *fakeMatcher) MatchReferralToken(_ context.Context, token string) (uuid.UUID, bool, error) {
	id, ok := f.tokens[token]
	return id, ok, nil
}

type fakeExtractor struct {
	result ports.Extraction
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ domain.Phase) (ports.Extraction, error) {
	f.calls++
	return f.result, f.err
}

type fixture struct {
	svc       *Service
	leads     *fakeLeadStore
	router    *fakeRouter
	matcher   *fakeMatcher
	extractor *fakeExtractor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sessions := repository.NewSessionRepository(client, time.Hour)

	log := logger.New("development")
	f := &fixture{
		leads:     &fakeLeadStore{leadID: uuid.New(), updates: make(map[uuid.UUID]domain.LeadSnapshot)},
		router:    &fakeRouter{},
		matcher:   &fakeMatcher{numbers: make(map[string]uuid.UUID), tokens: make(map[string]uuid.UUID)},
		extractor: &fakeExtractor{},
	}
	f.svc = New(sessions, f.leads, f.router, f.matcher, f.extractor,
		events.NewInMemoryBus(log), log,
		WithClock(func() time.Time { return serviceNow }))
	return f
}

// confirmThrough answers yes to every outstanding confirmation until the
// engine moves past the confirm step.
func confirmThrough(t *testing.T, svc *Service, id uuid.UUID) transport.TurnResponse {
	t.Helper()
	yes := true
	for i := 0; i < 25; i++ {
		resp, err := svc.Turn(context.Background(), id, transport.TurnRequest{ConfirmationResponse: &yes})
		if err != nil {
			t.Fatalf("Turn(confirm) error = %v", err)
		}
		if resp.Action.Type != domain.ActionConfirm {
			return resp
		}
	}
	t.Fatalf("confirmation loop did not terminate")
	return transport.TurnResponse{}
}

func minimumFields() map[string]string {
	return map[string]string{
		"consent":        "yes",
		"first_name":     "Jane",
		"last_name":      "Doe",
		"phone":          "2025550143",
		"email":          "Jane@Example.com",
		"contact_method": "call",
	}
}

func propertyAndFinancialFields() map[string]string {
	return map[string]string{
		"state":        "tx",
		"zip":          "75001",
		"land_status":  "renting",
		"home_type":    "double wide",
		"bedrooms":     "three",
		"timeline":     "3 months",
		"credit_range": "680",
		"budget_range": "100k_150k",
		"down_payment": "5k_10k",
		"contact_time": "weekday mornings",
	}
}

func TestConversationReachesPrequalificationAndRoutes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if start.Action.Type != domain.ActionAsk || start.Action.Field != domain.FieldConsent {
		t.Fatalf("start action = %+v, want ask consent", start.Action)
	}
	id := start.ConversationID

	resp, err := f.svc.Turn(ctx, id, transport.TurnRequest{Fields: minimumFields()})
	if err != nil {
		t.Fatalf("Turn(minimum fields) error = %v", err)
	}
	if resp.Action.Type != domain.ActionConfirm || resp.Action.Field != domain.FieldConsent {
		t.Fatalf("action = %+v, want confirm consent first", resp.Action)
	}

	resp = confirmThrough(t, f.svc, id)
	if resp.LeadID == nil {
		t.Fatal("lead not created after minimum fields confirmed")
	}
	if f.leads.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", f.leads.createCalls)
	}
	if resp.Action.Type != domain.ActionAsk || resp.Action.Field != domain.FieldState {
		t.Fatalf("action = %+v, want ask state after contact info", resp.Action)
	}

	if _, err := f.svc.Turn(ctx, id, transport.TurnRequest{Fields: propertyAndFinancialFields()}); err != nil {
		t.Fatalf("Turn(property fields) error = %v", err)
	}
	resp = confirmThrough(t, f.svc, id)

	if resp.Action.Type != domain.ActionComplete {
		t.Fatalf("action = %+v, want complete", resp.Action)
	}
	if !resp.Prequalified {
		t.Fatal("Prequalified = false after all required fields confirmed")
	}
	if len(f.router.routed) != 1 || f.router.routed[0] != *resp.LeadID {
		t.Fatalf("routed = %v, want exactly lead %s", f.router.routed, *resp.LeadID)
	}

	got, ok := f.leads.updates[*resp.LeadID]
	if !ok {
		t.Fatal("full snapshot never persisted via UpdateLead")
	}
	want := domain.LeadSnapshot{
		SessionID:       id,
		Consent:         true,
		FirstName:       "Jane",
		LastName:        "Doe",
		Phone:           "+12025550143",
		Email:           "jane@example.com",
		ContactMethod:   "call",
		State:           "TX",
		Zip:             "75001",
		LandStatus:      "renting",
		HomeType:        "double_wide",
		Bedrooms:        "3",
		TimelineRaw:     "3 months",
		TimelineBand:    "0_3_months",
		CreditRaw:       "680",
		CreditBand:      "680_719",
		BudgetRange:     "100k_150k",
		DownPayment:     "5k_10k",
		ContactTimeRaw:  "weekday mornings",
		ContactTimeBand: "weekday_morning",
		Prequalified:    true,
		Attribution:     domain.Attribution{Entrypoint: "voice_inbound"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lead snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStartAcquiresInboundNumberLock(t *testing.T) {
	f := newFixture(t)
	dealerID := uuid.New()
	f.matcher.numbers["+18005550100"] = dealerID

	start, err := f.svc.Start(context.Background(), transport.StartConversationRequest{
		Entrypoint:    "voice_inbound",
		InboundNumber: "+18005550100",
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	state, err := f.svc.State(context.Background(), start.ConversationID)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Attribution.LockedDealerID == nil || *state.Attribution.LockedDealerID != dealerID {
		t.Fatalf("LockedDealerID = %v, want %s", state.Attribution.LockedDealerID, dealerID)
	}
	if state.Attribution.LockedReason != domain.LockReasonDealerNumber {
		t.Fatalf("LockedReason = %q, want %q", state.Attribution.LockedReason, domain.LockReasonDealerNumber)
	}
}

func TestStartAcquiresReferralTokenLock(t *testing.T) {
	f := newFixture(t)
	dealerID := uuid.New()
	f.matcher.tokens["ref-abc123"] = dealerID

	start, err := f.svc.Start(context.Background(), transport.StartConversationRequest{
		Entrypoint:    "web_callback",
		TrackingToken: "ref-abc123",
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	state, err := f.svc.State(context.Background(), start.ConversationID)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Attribution.LockedReason != domain.LockReasonReferral {
		t.Fatalf("LockedReason = %q, want %q", state.Attribution.LockedReason, domain.LockReasonReferral)
	}
	if state.Attribution.TrackingToken != "ref-abc123" {
		t.Fatalf("TrackingToken = %q, want preserved", state.Attribution.TrackingToken)
	}
}

func TestConsentDeclinedEndsConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := f.svc.Turn(ctx, start.ConversationID, transport.TurnRequest{
		Fields: map[string]string{"consent": "no"},
	})
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if resp.Action.Type != domain.ActionEndCall || resp.Action.Reason != domain.EndReasonDoNotContact {
		t.Fatalf("action = %+v, want end_call/do_not_contact", resp.Action)
	}
	if !resp.DoNotContact {
		t.Fatal("DoNotContact = false after declined consent")
	}
	if f.leads.createCalls != 0 {
		t.Fatalf("createCalls = %d, want 0 for a declined caller", f.leads.createCalls)
	}

	_, err = f.svc.Turn(ctx, start.ConversationID, transport.TurnRequest{
		Fields: map[string]string{"first_name": "Jane"},
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindGone {
		t.Fatalf("Turn() after end error = %v, want KindGone", err)
	}
}

func TestTurnUnknownConversation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Turn(context.Background(), uuid.New(), transport.TurnRequest{})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("Turn() error = %v, want KindNotFound", err)
	}
}

func TestUtteranceGoesThroughExtractor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.extractor.result = ports.Extraction{Fields: map[string]string{"consent": "yes"}}

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := f.svc.Turn(ctx, start.ConversationID, transport.TurnRequest{Utterance: "sure, go ahead"})
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if f.extractor.calls != 1 {
		t.Fatalf("extractor calls = %d, want 1", f.extractor.calls)
	}
	if resp.Action.Type != domain.ActionConfirm || resp.Action.Field != domain.FieldConsent {
		t.Fatalf("action = %+v, want confirm consent from extracted fields", resp.Action)
	}
}

func TestExtractionFailureRepeatsQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.extractor.err = errors.New("model unavailable")

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := f.svc.Turn(ctx, start.ConversationID, transport.TurnRequest{Utterance: "mumble"})
	if err != nil {
		t.Fatalf("Turn() error = %v, extraction failure must be non-fatal", err)
	}
	if resp.Action.Type != domain.ActionAsk || resp.Action.Field != domain.FieldConsent {
		t.Fatalf("action = %+v, want the consent question re-asked", resp.Action)
	}
}

func TestInvalidAndUnknownFieldsAreSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := f.svc.Turn(ctx, start.ConversationID, transport.TurnRequest{
		Fields: map[string]string{"zip": "1234", "favorite_color": "blue"},
	})
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if resp.Action.Type != domain.ActionAsk || resp.Action.Field != domain.FieldConsent {
		t.Fatalf("action = %+v, want ask consent, rejected input must not advance", resp.Action)
	}

	state, err := f.svc.State(ctx, start.ConversationID)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if fv := state.Fields[domain.FieldZip]; fv.Status == domain.StatusSet || fv.Status == domain.StatusConfirmed {
		t.Fatalf("zip = %+v, want rejected value never stored", fv)
	}
}

func TestLeadCreateRetriedOnLaterTurn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.leads.createErr = errors.New("store down")

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	id := start.ConversationID

	if _, err := f.svc.Turn(ctx, id, transport.TurnRequest{Fields: minimumFields()}); err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	resp := confirmThrough(t, f.svc, id)
	if resp.LeadID != nil {
		t.Fatal("LeadID set even though the store was failing")
	}

	f.leads.createErr = nil
	resp, err = f.svc.Turn(ctx, id, transport.TurnRequest{})
	if err != nil {
		t.Fatalf("Turn() error = %v", err)
	}
	if resp.LeadID == nil {
		t.Fatal("lead create not retried once the store recovered")
	}
	if f.leads.createCalls != 1 {
		t.Fatalf("createCalls = %d, want 1", f.leads.createCalls)
	}
}

func TestEndMarksSessionTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start, err := f.svc.Start(ctx, transport.StartConversationRequest{Entrypoint: "voice_inbound"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := f.svc.End(ctx, start.ConversationID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if resp.Action.Type != domain.ActionEndCall {
		t.Fatalf("action = %+v, want end_call", resp.Action)
	}

	state, err := f.svc.State(ctx, start.ConversationID)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if !state.Ended {
		t.Fatal("Ended = false after End()")
	}

	// A second End is a no-op, not an error.
	if _, err := f.svc.End(ctx, start.ConversationID); err != nil {
		t.Fatalf("second End() error = %v", err)
	}
}
