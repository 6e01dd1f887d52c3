package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comfygen/pkg/errors"
)

func TestWorkflowBasicGraph(t *testing.T) {
	wf := newTestGenerator("/srv/hybrid", 8).Workflow("basic")
	require.Len(t, wf, 7)

	assert.Equal(t, "CheckpointLoaderSimple", wf["1"].ClassType)
	assert.Equal(t, "KSampler", wf["4"].ClassType)
	assert.Equal(t, "SaveImage", wf["7"].ClassType)

	// both prompt encoders consume the checkpoint's CLIP output slot
	assert.Equal(t, Ref("1", 1), wf["2"].Inputs["clip"])
	assert.Equal(t, Ref("1", 1), wf["5"].Inputs["clip"])

	// sampler wiring: model, prompts, latent
	sampler := wf["4"].Inputs
	assert.Equal(t, Ref("1", 0), sampler["model"])
	assert.Equal(t, Ref("2", 0), sampler["positive"])
	assert.Equal(t, Ref("5", 0), sampler["negative"])
	assert.Equal(t, Ref("3", 0), sampler["latent_image"])

	// decoder uses the checkpoint's VAE slot, save consumes the decode
	assert.Equal(t, Ref("1", 2), wf["6"].Inputs["vae"])
	assert.Equal(t, Ref("6", 0), wf["7"].Inputs["images"])
}

func TestWorkflowUnknownVariantFallsBackToBasic(t *testing.T) {
	gen := newTestGenerator("/srv/hybrid", 8)

	basic, err := json.Marshal(gen.Workflow("basic"))
	require.NoError(t, err)

	for _, variant := range []string{"", "bogus", "BASIC", "basic "} {
		got, err := json.Marshal(gen.Workflow(variant))
		require.NoError(t, err)
		assert.Equal(t, string(basic), string(got), "variant %q must serialize exactly like basic", variant)
	}
}

func TestWorkflowIsIdempotent(t *testing.T) {
	gen := newTestGenerator("/srv/hybrid", 8)

	first, err := json.Marshal(gen.Workflow("img2img"))
	require.NoError(t, err)
	second, err := json.Marshal(gen.Workflow("img2img"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestWorkflowCatalogValidates(t *testing.T) {
	gen := newTestGenerator("/srv/hybrid", 8)
	for _, variant := range WorkflowVariants() {
		t.Run(variant, func(t *testing.T) {
			assert.NoError(t, gen.Workflow(variant).Validate())
		})
	}
}

func TestWorkflowValidateRejectsDanglingReference(t *testing.T) {
	wf := Workflow{
		"1": {
			ClassType: "CheckpointLoaderSimple",
			Inputs:    map[string]any{"ckpt_name": "model.safetensors"},
		},
		"2": {
			ClassType: "CLIPTextEncode",
			Inputs: map[string]any{
				"text": "prompt",
				"clip": Ref("9", 1),
			},
		},
	}

	err := wf.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidWorkflow)
	assert.Contains(t, err.Error(), "missing node 9")
}

func TestAsReference(t *testing.T) {
	tests := []struct {
		name  string
		value any
		id    string
		isRef bool
	}{
		{"reference pair", Ref("4", 0), "4", true},
		{"literal string", "euler", "", false},
		{"literal number", 42, "", false},
		{"wrong arity", []any{"4"}, "", false},
		{"non-string id", []any{4, 0}, "", false},
		{"non-numeric slot", []any{"4", "0"}, "", false},
		{"float slot from round-trip", []any{"4", float64(0)}, "4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := asReference(tt.value)
			assert.Equal(t, tt.isRef, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

// A parsed graph must survive the JSON trip structurally, references
// included.
func TestWorkflowJSONRoundTrip(t *testing.T) {
	gen := newTestGenerator("/srv/hybrid", 8)

	data, err := json.Marshal(gen.Workflow("basic"))
	require.NoError(t, err)

	var decoded Workflow
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 7)

	id, ok := asReference(decoded["6"].Inputs["vae"])
	require.True(t, ok)
	assert.Equal(t, "1", id)
	assert.NoError(t, decoded.Validate())
}
