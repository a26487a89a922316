package intent_test

import (
	"reflect"
	"testing"

	"github.com/safespace-sl/safespace/internal/intent"
)

func TestClassify_Table(t *testing.T) {
	t.Parallel()

	c := intent.New()

	tests := []struct {
		name        string
		message     string
		wantPrimary string
		wantMinConf int
	}{
		{"empty", "", intent.General, 0},
		{"no match", "zzz qqq", intent.General, 0},
		{"suicide phrase", "I want to kill myself", intent.Emergency, 11},
		{"end my life", "I want to end my life", intent.Emergency, 11},
		{"panic attack", "I am having a panic attack", intent.Crisis, 6},
		{"krio greeting", "kushe, how you dey?", intent.Greeting, 2},
		{"exam anxiety", "I feel so anxious about my exams", intent.Anxiety, 1},
		{"kush addiction", "I can't stop smoking kush", intent.Addiction, 2},
		{"grief", "my father passed away last month", intent.Grief, 1},
		{"uppercase", "I FEEL SO WORRIED", intent.Anxiety, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.Classify(tt.message)
			if got.Primary != tt.wantPrimary {
				t.Errorf("Primary = %q, want %q (full: %+v)", got.Primary, tt.wantPrimary, got)
			}
			if got.Confidence < tt.wantMinConf {
				t.Errorf("Confidence = %d, want >= %d", got.Confidence, tt.wantMinConf)
			}
		})
	}
}

func TestClassify_EmergencyDominates(t *testing.T) {
	t.Parallel()

	c := intent.New()
	// Several ordinary keywords plus one emergency keyword: the boost
	// must keep emergency on top.
	got := c.Classify("I am worried and stressed about money and work but mostly I want to die")
	if got.Primary != intent.Emergency {
		t.Fatalf("Primary = %q, want emergency (%+v)", got.Primary, got)
	}
	if !got.IsEmergency() {
		t.Error("IsEmergency() = false, want true")
	}
}

func TestClassify_AccumulatesWithinCategory(t *testing.T) {
	t.Parallel()

	c := intent.New()
	one := c.Classify("I feel anxious")
	two := c.Classify("I feel anxious and worried and nervous")
	if two.Confidence <= one.Confidence {
		t.Errorf("confidence did not accumulate: one=%d two=%d", one.Confidence, two.Confidence)
	}
}

func TestClassify_SecondaryIntents(t *testing.T) {
	t.Parallel()

	c := intent.New()
	got := c.Classify("I am anxious about money, my job and my debt")
	if got.Primary != intent.Practical {
		t.Fatalf("Primary = %q, want practical (%+v)", got.Primary, got)
	}
	if len(got.Secondary) == 0 || len(got.Secondary) > 2 {
		t.Fatalf("Secondary = %v, want 1-2 entries", got.Secondary)
	}
	if got.Secondary[0] != intent.Anxiety {
		t.Errorf("Secondary[0] = %q, want anxiety", got.Secondary[0])
	}
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()

	c := intent.New()
	msg := "I am worried about my exams and my family, can't sleep"
	first := c.Classify(msg)
	for i := 0; i < 50; i++ {
		if got := c.Classify(msg); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestResult_CrisisThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  intent.Result
		want bool
	}{
		{"crisis primary", intent.Result{Primary: intent.Crisis, Confidence: 6}, true},
		{"high score other intent", intent.Result{Primary: intent.Anxiety, Confidence: 4}, true},
		{"low score", intent.Result{Primary: intent.Anxiety, Confidence: 2}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.res.IsCrisis(); got != tt.want {
				t.Errorf("IsCrisis() = %v, want %v", got, tt.want)
			}
		})
	}
}
