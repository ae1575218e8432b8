package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"google.golang.org/api/googleapi"
)

type call struct{ model string }

// fakeClient builds a client whose model calls are answered by results, in order.
func fakeClient(results ...error) (*Client, *[]call, *[]time.Duration) {
	var calls []call
	var slept []time.Duration

	c := newClient(&config.GeminiConfig{RetryWait: 60})
	c.generate = func(_ context.Context, model, system, prompt string) (string, error) {
		calls = append(calls, call{model})
		err := results[0]
		results = results[1:]
		if err != nil {
			return "", err
		}
		return `{"model":"` + model + `"}`, nil
	}
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &calls, &slept
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), &config.GeminiConfig{})
	assert.Error(t, err)
}

func TestFirstModelSucceeds(t *testing.T) {
	c, calls, slept := fakeClient(nil)

	out, err := c.GenerateResponse(context.Background(), "sys", "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"model":"gemini-2.5-flash"}`, out)
	assert.Len(t, *calls, 1)
	assert.Empty(t, *slept)
}

func TestQuotaErrorWaitsAndRetries(t *testing.T) {
	quota := &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"}
	c, calls, slept := fakeClient(quota, nil)

	out, err := c.GenerateResponse(context.Background(), "sys", "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"model":"gemini-2.5-flash"}`, out)
	assert.Equal(t, []call{{"gemini-2.5-flash"}, {"gemini-2.5-flash"}}, *calls)
	assert.Equal(t, []time.Duration{60 * time.Second}, *slept)
}

func TestFailedRetryMovesToNextModel(t *testing.T) {
	c, calls, _ := fakeClient(
		errors.New("rpc error: RESOURCE_EXHAUSTED"),
		errors.New("still 429"),
		nil,
	)

	out, err := c.GenerateResponse(context.Background(), "sys", "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"model":"gemini-2.0-flash-001"}`, out)
	assert.Len(t, *calls, 3)
}

func TestNotFoundTriesNextModel(t *testing.T) {
	notFound := &googleapi.Error{Code: http.StatusNotFound}
	c, calls, slept := fakeClient(notFound, nil)

	out, err := c.GenerateResponse(context.Background(), "sys", "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"model":"gemini-2.0-flash-001"}`, out)
	assert.Equal(t, []call{{"gemini-2.5-flash"}, {"gemini-2.0-flash-001"}}, *calls)
	assert.Empty(t, *slept)
}

func TestUnexpectedErrorStops(t *testing.T) {
	c, calls, _ := fakeClient(errors.New("invalid argument"))

	_, err := c.GenerateResponse(context.Background(), "sys", "theme")
	assert.ErrorContains(t, err, "invalid argument")
	assert.Len(t, *calls, 1)
}

func TestAllModelsMissing(t *testing.T) {
	c, _, _ := fakeClient(errors.New("404 a"), errors.New("404 b"))

	_, err := c.GenerateResponse(context.Background(), "sys", "theme")
	assert.ErrorContains(t, err, "all gemini models failed")
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
