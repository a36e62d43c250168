package observer

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestMetricsObserver(t *testing.T) {
	m := NewMetricsObserver()
	ctx := context.Background()

	events := []VerificationEvent{
		{EventType: VerificationStarted},
		{EventType: VerificationCompleted, Verdict: "Likely Authentic", ProcessingTime: 10 * time.Millisecond},
		{EventType: VerificationStarted},
		{EventType: VerificationCompleted, Verdict: "Inconclusive", ProcessingTime: 30 * time.Millisecond},
		{EventType: VerificationStarted},
		{EventType: VerificationFailed, Verdict: "Inconclusive"},
		{EventType: SerialExtracted, Success: true},
		{EventType: SerialExtracted, Success: false},
		{EventType: SerialExtractionFailed},
	}
	for _, e := range events {
		m.OnEvent(ctx, e)
	}

	got := m.GetMetrics()
	checks := map[string]int64{
		"total_requests":         3,
		"completed_requests":     2,
		"failed_requests":        1,
		"ocr_attempts":           2,
		"ocr_failures":           1,
		"serials_read":           1,
		"avg_processing_time_ms": 20,
	}
	for key, want := range checks {
		if got[key] != want {
			t.Errorf("GetMetrics()[%q] = %v, want %d", key, got[key], want)
		}
	}

	verdicts := got["verdicts"].(map[string]int64)
	if verdicts["Inconclusive"] != 2 || verdicts["Likely Authentic"] != 1 {
		t.Errorf("verdicts = %v", verdicts)
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	o := NewLoggingObserver(logger)
	o.OnEvent(context.Background(), VerificationEvent{
		EventType:  VerificationCompleted,
		RequestID:  "req-1",
		Verdict:    "Likely Authentic",
		Confidence: 75,
		Success:    true,
		Metadata:   map[string]interface{}{"brand": "gucci"},
	})

	out := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"verdict":"Likely Authentic"`, `"brand":"gucci"`, "Verification completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

type recordingObserver struct {
	name string
	wg   *sync.WaitGroup
	mu   sync.Mutex
	got  []EventType
}

func (r *recordingObserver) OnEvent(_ context.Context, e VerificationEvent) {
	r.mu.Lock()
	r.got = append(r.got, e.EventType)
	r.mu.Unlock()
	r.wg.Done()
}

func (r *recordingObserver) GetObserverName() string { return r.name }

type panickingObserver struct{ wg *sync.WaitGroup }

func (p *panickingObserver) OnEvent(context.Context, VerificationEvent) {
	defer p.wg.Done()
	panic("observer bug")
}

func (p *panickingObserver) GetObserverName() string { return "panicking" }

func TestEventPublisher(t *testing.T) {
	var wg sync.WaitGroup
	rec := &recordingObserver{name: "recorder", wg: &wg}

	p := NewEventPublisher()
	p.Subscribe(rec)
	p.Subscribe(&panickingObserver{wg: &wg})

	wg.Add(2)
	p.NotifyObservers(context.Background(), VerificationEvent{EventType: VerificationStarted})
	wg.Wait()

	p.Unsubscribe(&panickingObserver{})
	wg.Add(1)
	p.NotifyObservers(context.Background(), VerificationEvent{EventType: VerificationCompleted})
	wg.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got) != 2 || rec.got[0] != VerificationStarted || rec.got[1] != VerificationCompleted {
		t.Errorf("recorded events = %v", rec.got)
	}
}
