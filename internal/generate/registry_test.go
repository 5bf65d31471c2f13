package generate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
)

func echo(tag string) generate.AdapterFunc {
	return func(_ context.Context, modelID, prompt string) (string, error) {
		return "  " + tag + ":" + modelID + ":" + prompt + "\n", nil
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := generate.NewRegistry()
	r.Register("specific", generate.Exact("amazon.nova-pro-v1:0"), echo("specific"))
	r.Register("family", generate.Prefix("amazon.nova"), echo("family"))

	name, _, err := r.Resolve("amazon.nova-pro-v1:0")
	require.NoError(t, err)
	assert.Equal(t, "specific", name)

	out, err := r.Generate(context.Background(), "amazon.nova-lite-v1:0", "hi")
	require.NoError(t, err)
	assert.Equal(t, "family:amazon.nova-lite-v1:0:hi", out)
}

func TestRegistryFallbackAndMissing(t *testing.T) {
	r := generate.NewRegistry()
	_, err := r.Generate(context.Background(), "unknown.model", "hi")
	assert.True(t, errors.Is(err, generate.ErrNoAdapter))

	r.SetFallback(echo("fb"))
	name, _, err := r.Resolve("unknown.model")
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)
}

func TestRegistryWrapsAdapterErrors(t *testing.T) {
	boom := errors.New("throttled")
	r := generate.NewRegistry()
	r.Register("bad", generate.Prefix("bad."), generate.AdapterFunc(func(context.Context, string, string) (string, error) {
		return "", boom
	}))

	_, err := r.Generate(context.Background(), "bad.model", "hi")
	assert.True(t, errors.Is(err, generate.ErrUpstreamCall))
	assert.True(t, errors.Is(err, boom))

	var ue *generate.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "bad.model", ue.Model)
	assert.Equal(t, "upstream call failed: bad.model: throttled", err.Error())
	assert.Equal(t, boom, generate.Cause(err))
}

func TestCauseLeavesOtherErrorsAlone(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, generate.Cause(plain))
}
