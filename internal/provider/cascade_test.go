package provider_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/safespace-sl/safespace/internal/provider"
	"github.com/safespace-sl/safespace/internal/provider/providertest"
)

// syncBuffer is a thread-safe bytes.Buffer for log assertions.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), buf
}

func okProvider(name, response string) *providertest.MockProvider {
	return &providertest.MockProvider{
		NameValue: name,
		GenerateFunc: func(_ context.Context, _ provider.Request) (string, error) {
			return response, nil
		},
	}
}

func failProvider(name string, err error) *providertest.MockProvider {
	return &providertest.MockProvider{
		NameValue: name,
		GenerateFunc: func(_ context.Context, _ provider.Request) (string, error) {
			return "", err
		},
	}
}

func TestCascade_FirstSuccess(t *testing.T) {
	t.Parallel()

	p1 := okProvider("p1", "first")
	p2 := okProvider("p2", "second")
	c := provider.NewCascade([]provider.Entry{
		{Provider: p1},
		{Provider: p2},
	})

	res := c.Generate(context.Background(), provider.Request{Prompt: "hi"})
	if !res.Success {
		t.Fatalf("Success = false, err = %v", res.Err)
	}
	if res.Response != "first" || res.Provider != "p1" {
		t.Errorf("got (%q, %q), want (first, p1)", res.Response, res.Provider)
	}
	if p2.GenerateCalls() != 0 {
		t.Errorf("second provider called %d times, want 0 (short-circuit)", p2.GenerateCalls())
	}
}

func TestCascade_Failover(t *testing.T) {
	t.Parallel()

	p1 := failProvider("p1", provider.ErrProviderDown)
	p2 := okProvider("p2", "Hello")
	c := provider.NewCascade([]provider.Entry{
		{Provider: p1},
		{Provider: p2},
	})

	res := c.Generate(context.Background(), provider.Request{Prompt: "hi"})
	if !res.Success {
		t.Fatalf("Success = false, err = %v", res.Err)
	}
	if res.Response != "Hello" {
		t.Errorf("Response = %q, want %q", res.Response, "Hello")
	}
	if res.Provider != "p2" {
		t.Errorf("Provider = %q, want %q", res.Provider, "p2")
	}
}

func TestCascade_AllFail(t *testing.T) {
	t.Parallel()

	c := provider.NewCascade([]provider.Entry{
		{Provider: failProvider("p1", provider.ErrNotConfigured)},
		{Provider: failProvider("p2", provider.ErrRateLimit)},
	})

	res := c.Generate(context.Background(), provider.Request{Prompt: "hi"})
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if !errors.Is(res.Err, provider.ErrAllProviders) {
		t.Errorf("err = %v, want ErrAllProviders", res.Err)
	}
	if !errors.Is(res.Err, provider.ErrRateLimit) {
		t.Errorf("err = %v, want wrapped last provider error", res.Err)
	}
}

func TestCascade_Empty(t *testing.T) {
	t.Parallel()

	c := provider.NewCascade(nil)
	res := c.Generate(context.Background(), provider.Request{Prompt: "hi"})
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if !errors.Is(res.Err, provider.ErrAllProviders) {
		t.Errorf("err = %v, want ErrAllProviders", res.Err)
	}
}

func TestCascade_PanicIsFailure(t *testing.T) {
	t.Parallel()

	boom := &providertest.MockProvider{
		NameValue: "boom",
		GenerateFunc: func(_ context.Context, _ provider.Request) (string, error) {
			panic("kaboom")
		},
	}
	c := provider.NewCascade([]provider.Entry{
		{Provider: boom},
		{Provider: okProvider("ok", "recovered")},
	})

	res := c.Generate(context.Background(), provider.Request{})
	if !res.Success || res.Response != "recovered" {
		t.Fatalf("got %+v, want success from second provider", res)
	}
}

func TestCascade_AttemptTimeout(t *testing.T) {
	t.Parallel()

	slow := &providertest.MockProvider{
		NameValue: "slow",
		GenerateFunc: func(ctx context.Context, _ provider.Request) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	c := provider.NewCascade([]provider.Entry{
		{Provider: slow, Timeout: 10 * time.Millisecond},
		{Provider: okProvider("fast", "ok")},
	})

	start := time.Now()
	res := c.Generate(context.Background(), provider.Request{})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cascade took %v, timeout not applied", elapsed)
	}
	if !res.Success || res.Provider != "fast" {
		t.Fatalf("got %+v, want failover to fast provider", res)
	}
}

func TestCascade_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := okProvider("p1", "never")
	c := provider.NewCascade([]provider.Entry{{Provider: p}})

	res := c.Generate(ctx, provider.Request{})
	if res.Success {
		t.Fatal("Success = true with cancelled context")
	}
	if p.GenerateCalls() != 0 {
		t.Errorf("provider called %d times after cancellation, want 0", p.GenerateCalls())
	}
}

func TestCascade_LogsFailover(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	c := provider.NewCascade([]provider.Entry{
		{Provider: failProvider("p1", provider.ErrProviderDown)},
		{Provider: okProvider("p2", "ok")},
	}, provider.WithLogger(logger))

	c.Generate(context.Background(), provider.Request{})

	out := buf.String()
	if !strings.Contains(out, "provider failed") {
		t.Errorf("log missing failover record:\n%s", out)
	}
	if !strings.Contains(out, "provider succeeded") {
		t.Errorf("log missing success record:\n%s", out)
	}
}

func TestCascade_Names(t *testing.T) {
	t.Parallel()

	c := provider.NewCascade([]provider.Entry{
		{Provider: okProvider("a", "")},
		{Provider: okProvider("b", "")},
	})
	names := c.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}

func TestRequest_FactsBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		facts []string
		want  string
	}{
		{"empty", nil, ""},
		{
			"two facts",
			[]string{"NACOB helpline: 079-797979", "Helpline 919 is free"},
			"\n\nUSE THESE FACTS TO INFORM YOUR RESPONSE:\nNACOB helpline: 079-797979\nHelpline 919 is free",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := provider.Request{Facts: tt.facts}
			if got := req.FactsBlock(); got != tt.want {
				t.Errorf("FactsBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
