package ai

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
)

type fakeProvider struct {
	name     string
	response string
	err      error
	delay    time.Duration
	calls    int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, _ providers.CompletionRequest) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

func intCall() Call[int] {
	return Call[int]{
		Operation: "test_op",
		Parse:     strconv.Atoi,
		Fallback:  func() int { return -1 },
		Timeout:   time.Second,
	}
}

func TestExecute_FirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", response: "42"}
	second := &fakeProvider{name: "second", response: "7"}

	result := Execute(context.Background(), []providers.CompletionProvider{first, second}, intCall())

	assert.Equal(t, 42, result)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestExecute_AdvancesOnTransportError(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("connection refused")}
	second := &fakeProvider{name: "second", response: "7"}

	result := Execute(context.Background(), []providers.CompletionProvider{first, second}, intCall())

	assert.Equal(t, 7, result)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestExecute_AdvancesOnParseError(t *testing.T) {
	first := &fakeProvider{name: "first", response: "not a number"}
	second := &fakeProvider{name: "second", response: "7"}

	result := Execute(context.Background(), []providers.CompletionProvider{first, second}, intCall())

	assert.Equal(t, 7, result)
}

func TestExecute_ExhaustionResolvesWithFallback(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("down")}
	second := &fakeProvider{name: "second", response: "garbage"}

	result := Execute(context.Background(), []providers.CompletionProvider{first, second}, intCall())

	assert.Equal(t, -1, result)
}

func TestExecute_EmptyChainResolvesWithFallback(t *testing.T) {
	result := Execute(context.Background(), nil, intCall())

	assert.Equal(t, -1, result)
}

func TestExecute_SlowProviderTimesOut(t *testing.T) {
	slow := &fakeProvider{name: "slow", response: "42", delay: 500 * time.Millisecond}
	fast := &fakeProvider{name: "fast", response: "7"}

	call := intCall()
	call.Timeout = 20 * time.Millisecond

	result := Execute(context.Background(), []providers.CompletionProvider{slow, fast}, call)

	assert.Equal(t, 7, result)
}

func TestExecute_ParseSeesFenceStrippedText(t *testing.T) {
	provider := &fakeProvider{name: "p", response: "```json\n42\n```"}

	result := Execute(context.Background(), []providers.CompletionProvider{provider}, intCall())

	assert.Equal(t, 42, result)
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n[1,2]\n```":         `[1,2]`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"plain text":              "plain text",
		"```json{\"a\":1}```":     `{"a":1}`,
		"":                        "",
	}

	for in, want := range cases {
		assert.Equal(t, want, StripFences(in), "input %q", in)
	}
}
