package counselor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/safespace-sl/safespace/internal/culture"
	"github.com/safespace-sl/safespace/internal/knowledge"
	"github.com/safespace-sl/safespace/internal/memory"
	"github.com/safespace-sl/safespace/internal/provider"
	"github.com/safespace-sl/safespace/internal/provider/providertest"
	"github.com/safespace-sl/safespace/internal/respond"
	"github.com/safespace-sl/safespace/internal/rng"
)

type fakeHistory struct {
	mu   sync.Mutex
	msgs map[string][]memory.Message
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{msgs: make(map[string][]memory.Message)}
}

func (f *fakeHistory) Append(_ context.Context, msg memory.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.msgs[msg.UserID] = append(f.msgs[msg.UserID], msg)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, userID string, n int) ([]memory.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.msgs[userID]
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]memory.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (f *fakeHistory) Count(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs[userID]), nil
}

func (f *fakeHistory) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeSummaries struct {
	mu     sync.Mutex
	latest map[string]memory.Summary
	saves  int
}

func newFakeSummaries() *fakeSummaries {
	return &fakeSummaries{latest: make(map[string]memory.Summary)}
}

func (f *fakeSummaries) Latest(_ context.Context, userID string) (memory.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.latest[userID]
	if !ok {
		return memory.Summary{}, memory.ErrNotFound
	}
	return s, nil
}

func (f *fakeSummaries) Save(_ context.Context, s memory.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[s.UserID] = s
	f.saves++
	return nil
}

func (f *fakeSummaries) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeProfiles struct {
	profiles map[string]memory.Profile
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (memory.Profile, error) {
	if f == nil || f.profiles == nil {
		return memory.Profile{}, memory.ErrNotFound
	}
	p, ok := f.profiles[userID]
	if !ok {
		return memory.Profile{}, memory.ErrNotFound
	}
	return p, nil
}

type fakeSearcher struct {
	mu    sync.Mutex
	hits  []knowledge.Fact
	err   error
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, query string, limit int) ([]knowledge.Fact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.hits, f.err
}

func (f *fakeSearcher) searchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fixture struct {
	counselor *Counselor
	mock      *providertest.MockProvider
	history   *fakeHistory
	summaries *fakeSummaries
	profiles  *fakeProfiles
	searcher  *fakeSearcher
}

func newFixture(t *testing.T, cfg Config, r rng.Rand) *fixture {
	t.Helper()

	mock := &providertest.MockProvider{
		NameValue: "mock",
		GenerateFunc: func(_ context.Context, _ provider.Request) (string, error) {
			return "Model reply.", nil
		},
	}
	history := newFakeHistory()
	summaries := newFakeSummaries()
	profiles := &fakeProfiles{profiles: make(map[string]memory.Profile)}
	searcher := &fakeSearcher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := New(cfg, Deps{
		Generator: respond.New(r),
		Adapter:   culture.New(r, culture.DefaultProbabilities()),
		Cascade:   provider.NewCascade([]provider.Entry{{Provider: mock}}),
		Retriever: searcher,
		History:   history,
		Summaries: summaries,
		Profiles:  profiles,
		Rand:      r,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(c.Close)

	return &fixture{
		counselor: c,
		mock:      mock,
		history:   history,
		summaries: summaries,
		profiles:  profiles,
		searcher:  searcher,
	}
}

func TestProcessMessage_EmptyUserID(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	_, err := fx.counselor.ProcessMessage(context.Background(), "hello", "", Context{})
	if !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("ProcessMessage() error = %v, want ErrEmptyUserID", err)
	}
}

func TestProcessMessage_EmergencyShortCircuit(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I want to kill myself", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if !reply.IsEmergency {
		t.Error("IsEmergency = false, want true")
	}
	if reply.RequiresFollowup {
		t.Error("RequiresFollowup = true, want false for emergency")
	}
	if reply.Response != respond.EmergencyResponse() {
		t.Errorf("Response = %q, want fixed emergency text", reply.Response)
	}
	if !strings.Contains(reply.Response, "116") {
		t.Error("emergency response missing the 116 hotline")
	}
	if fx.mock.GenerateCalls() != 0 {
		t.Errorf("provider called %d times, want 0 on emergency", fx.mock.GenerateCalls())
	}
	if fx.searcher.searchCalls() != 0 {
		t.Errorf("retriever called %d times, want 0 on emergency", fx.searcher.searchCalls())
	}
	want := []string{"116 Emergency", "919 Mental Health Helpline", "Kissy Hospital (24/7)"}
	if len(reply.Resources) != len(want) {
		t.Fatalf("Resources = %v, want %v", reply.Resources, want)
	}
	for i, r := range want {
		if reply.Resources[i] != r {
			t.Errorf("Resources[%d] = %q, want %q", i, reply.Resources[i], r)
		}
	}
}

func TestProcessMessage_CrisisFromAccumulatedScore(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})

	// Four unboosted keyword hits score 4: past the crisis threshold,
	// below the emergency one.
	reply, err := fx.counselor.ProcessMessage(context.Background(),
		"I'm so worried and anxious, full of stress and fear", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if reply.IsEmergency {
		t.Error("IsEmergency = true, want false")
	}
	if reply.Response != respond.CrisisResponse() {
		t.Errorf("Response = %q, want fixed crisis text", reply.Response)
	}
	if fx.mock.GenerateCalls() != 0 {
		t.Errorf("provider called %d times, want 0 on crisis", fx.mock.GenerateCalls())
	}
}

func TestProcessMessage_ProviderResponse(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if reply.Response != "Model reply." {
		t.Errorf("Response = %q, want provider text", reply.Response)
	}
	if reply.IsEmergency {
		t.Error("IsEmergency = true, want false")
	}

	req := fx.mock.LastRequest()
	if !strings.Contains(req.SystemInstruction, "compassionate") {
		t.Errorf("SystemInstruction = %q, want neutral persona text", req.SystemInstruction)
	}
	if !strings.Contains(req.SystemInstruction, "first message of the conversation") {
		t.Error("SystemInstruction missing first-turn greeting note")
	}
	if req.Prompt != "I no sleep well" {
		t.Errorf("Prompt = %q", req.Prompt)
	}

	// Both halves of the exchange are persisted.
	msgs, _ := fx.history.Recent(context.Background(), "user-1", 10)
	if len(msgs) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(msgs))
	}
	if msgs[0].Sender != memory.SenderUser || msgs[1].Sender != memory.SenderCounselor {
		t.Errorf("persisted senders = %v, %v", msgs[0].Sender, msgs[1].Sender)
	}
}

func TestProcessMessage_SecondTurnInstruction(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})

	ctx := context.Background()
	if _, err := fx.counselor.ProcessMessage(ctx, "I no sleep well", "user-1", Context{}); err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if _, err := fx.counselor.ProcessMessage(ctx, "Still awake at night", "user-1", Context{}); err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	req := fx.mock.LastRequest()
	if !strings.Contains(req.SystemInstruction, "Do not greet the user again") {
		t.Error("SystemInstruction missing mid-conversation greeting constraint")
	}
	if len(req.History) != 2 {
		t.Errorf("History has %d turns, want 2", len(req.History))
	}
}

func TestProcessMessage_FactsFlowToProvider(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.searcher.hits = []knowledge.Fact{{Content: "NACOB offers free addiction counseling"}}

	if _, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1", Context{}); err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	req := fx.mock.LastRequest()
	if len(req.Facts) != 1 || req.Facts[0] != "NACOB offers free addiction counseling" {
		t.Errorf("Facts = %v, want retrieved fact", req.Facts)
	}
}

func TestProcessMessage_RetrievalFailureDegrades(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.searcher.err = errors.New("embedder offline")

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if reply.Response != "Model reply." {
		t.Errorf("Response = %q, retrieval failure must not block generation", reply.Response)
	}
	if len(fx.mock.LastRequest().Facts) != 0 {
		t.Errorf("Facts = %v, want none", fx.mock.LastRequest().Facts)
	}
}

func TestProcessMessage_CascadeFailureFallsBackToTemplates(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.mock.GenerateFunc = func(_ context.Context, _ provider.Request) (string, error) {
		return "", provider.ErrProviderDown
	}

	reply, err := fx.counselor.ProcessMessage(context.Background(),
		"I de feel anxious about everything", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if reply.Response == "" {
		t.Fatal("Response empty, template fallback must always produce text")
	}
	if reply.Response == "Model reply." {
		t.Error("Response came from the failed provider")
	}
}

func TestProcessMessage_AdviceRequest(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})

	reply, err := fx.counselor.ProcessMessage(context.Background(),
		"What should I do about my kush problem?", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if !strings.Contains(reply.Response, "NACOB at 079-797979") {
		t.Errorf("Response = %q, want addiction advice with NACOB contact", reply.Response)
	}
	if fx.mock.GenerateCalls() != 0 {
		t.Errorf("provider called %d times, want 0 for advice requests", fx.mock.GenerateCalls())
	}
}

func TestProcessMessage_FollowupAppended(t *testing.T) {
	t.Parallel()

	// Three failed adaptation rolls, then a passing follow-up roll;
	// Ints pick the third question.
	script := &rng.Script{Floats: []float64{0.9, 0.9, 0.9, 0.1}, Ints: []int{2}}
	fx := newFixture(t, Config{}, script)

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if !reply.RequiresFollowup {
		t.Error("RequiresFollowup = false, want true")
	}
	if reply.Response != "Model reply. What happened next?" {
		t.Errorf("Response = %q", reply.Response)
	}
}

func TestProcessMessage_BackReference(t *testing.T) {
	t.Parallel()

	// First exchange consumes 4 floats (3 adaptation + follow-up).
	// Second exchange: 3 adaptation, back-reference outer 0.1 < 0.3,
	// inner 0.2 < 0.5, follow-up fails.
	script := &rng.Script{Floats: []float64{
		0.9, 0.9, 0.9, 0.9,
		0.9, 0.9, 0.9, 0.1, 0.2, 0.9,
	}}
	fx := newFixture(t, Config{}, script)

	ctx := context.Background()
	if _, err := fx.counselor.ProcessMessage(ctx, "my boss de give me problem at de office", "user-1", Context{}); err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	reply, err := fx.counselor.ProcessMessage(ctx, "I no sleep well", "user-1", Context{})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	want := "Model reply. Earlier you mentioned work - is this related?"
	if reply.Response != want {
		t.Errorf("Response = %q, want %q", reply.Response, want)
	}
}

func TestProcessMessage_GenderPersonalization(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.mock.GenerateFunc = func(_ context.Context, _ provider.Request) (string, error) {
		return "Take heart, my brother/sister.", nil
	}

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1",
		Context{Gender: "male"})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if reply.Response != "Take heart, my brother." {
		t.Errorf("Response = %q", reply.Response)
	}
}

func TestProcessMessage_ContextPrecedence(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.profiles.profiles["user-1"] = memory.Profile{ID: "user-1", Location: "Bo"}

	reply, err := fx.counselor.ProcessMessage(context.Background(), "I no sleep well", "user-1",
		Context{Location: "Freetown"})
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	// Explicit Freetown beats the stored Bo: the location extension
	// must come from the capital's facilities.
	joined := strings.Join(reply.Resources, "|")
	if !strings.Contains(joined, "Kissy Psychiatric Hospital") {
		t.Errorf("Resources = %v, want Freetown facilities", reply.Resources)
	}
	if strings.Contains(joined, "Bo Government Hospital") {
		t.Errorf("Resources = %v, provincial facility leaked in", reply.Resources)
	}
}

func TestProcessMessage_GuestNeverSummarized(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{SummaryThreshold: 1}, &rng.Script{})

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if _, err := fx.counselor.ProcessMessage(ctx, "I no sleep well", "guest-1", Context{}); err != nil {
			t.Fatalf("ProcessMessage() error = %v", err)
		}
	}
	fx.counselor.Close()

	if n := fx.summaries.saveCount(); n != 0 {
		t.Errorf("summaries saved = %d, want 0 for guests", n)
	}
}

func TestProcessMessage_SummarizesPastThreshold(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{SummaryThreshold: 3}, &rng.Script{})
	fx.profiles.profiles["user-1"] = memory.Profile{ID: "user-1", Email: "aminata@example.sl"}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := fx.counselor.ProcessMessage(ctx, "I no sleep well", "user-1", Context{}); err != nil {
			t.Fatalf("ProcessMessage() error = %v", err)
		}
	}
	fx.counselor.Close()

	s, err := fx.summaries.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("Latest() error = %v, want a stored summary", err)
	}
	if s.Content == "" {
		t.Error("summary content empty")
	}
	if s.MessageCount < 4 {
		t.Errorf("MessageCount = %d, want >= 4", s.MessageCount)
	}
}

func TestSystemInstruction_IncludesSummaryForRegisteredUsers(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, Config{}, &rng.Script{})
	fx.summaries.latest["user-1"] = memory.Summary{
		UserID:  "user-1",
		Content: "User has been coping with grief after losing their father.",
	}

	registered := memory.Profile{ID: "user-1", Email: "aminata@example.sl"}
	got := fx.counselor.systemInstruction(context.Background(), "user-1", registered)
	if !strings.Contains(got, "coping with grief") {
		t.Error("instruction missing stored summary for registered user")
	}

	guest := memory.Profile{ID: "user-1"}
	got = fx.counselor.systemInstruction(context.Background(), "user-1", guest)
	if strings.Contains(got, "coping with grief") {
		t.Error("guest instruction must not include stored summaries")
	}
}

func TestPersonaInstruction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		persona string
		want    string
	}{
		{PersonaNeutral, "compassionate"},
		{PersonaSisterMabinty, "Sister Mabinty"},
		{PersonaBrotherSorie, "Brother Sorie"},
		{"unknown", "compassionate"},
		{"", "compassionate"},
	}
	for _, tt := range tests {
		tt := tt
		if got := personaInstruction(tt.persona); !strings.Contains(got, tt.want) {
			t.Errorf("personaInstruction(%q) missing %q", tt.persona, tt.want)
		}
	}
}

func TestSuggestedResources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		intent   string
		location string
		wantLen  int
		contains string
	}{
		{"emergency", "emergency", "", 3, "116 Emergency"},
		{"unknown intent", "mystery", "", 2, "Ministry of Health Hotline"},
		{"capped with location", "emergency", "Freetown", 5, "Kissy Psychiatric Hospital"},
		{"generic with province", "mystery", "Makeni", 4, "Makeni Government Hospital"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SuggestedResources(tt.intent, tt.location)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d (%v)", len(got), tt.wantLen, got)
			}
			if !strings.Contains(strings.Join(got, "|"), tt.contains) {
				t.Errorf("resources %v missing %q", got, tt.contains)
			}
		})
	}
}
