package generator

import (
	"fmt"

	"comfygen/pkg/errors"
)

// WorkflowNode is one node of a ComfyUI pipeline graph. Inputs map
// parameter names to either literal values or [sourceNodeID, outputSlot]
// reference pairs.
type WorkflowNode struct {
	ClassType string         `json:"class_type"`
	Inputs    map[string]any `json:"inputs"`
}

// Workflow maps node IDs to nodes. The execution engine consuming the
// graph resolves references by ID; slot indices are positional.
type Workflow map[string]WorkflowNode

// Ref builds a [nodeID, outputSlot] reference pair.
func Ref(nodeID string, slot int) []any {
	return []any{nodeID, slot}
}

// DefaultWorkflowVariant is the fallback for unrecognized variant names.
const DefaultWorkflowVariant = "basic"

// Workflow returns the pipeline graph for the given variant. Unknown
// variants fall back to the basic graph, so the catalog lookup is total
// and never fails.
func (g *Generator) Workflow(variant string) Workflow {
	builder, ok := workflowCatalog[variant]
	if !ok {
		g.logger.Debug().Str("variant", variant).Msg("unknown workflow variant, using basic")
		builder = workflowCatalog[DefaultWorkflowVariant]
	}
	return builder()
}

// WorkflowVariants lists the known variant names.
func WorkflowVariants() []string {
	return []string{"basic", "img2img"}
}

var workflowCatalog = map[string]func() Workflow{
	"basic":   basicWorkflow,
	"img2img": img2imgWorkflow,
}

// basicWorkflow is the text-to-image pipeline: checkpoint → prompt
// encodings → empty latent → sampler → decode → save.
func basicWorkflow() Workflow {
	return Workflow{
		"1": {
			ClassType: "CheckpointLoaderSimple",
			Inputs: map[string]any{
				"ckpt_name": "flux1-dev.safetensors",
			},
		},
		"2": {
			ClassType: "CLIPTextEncode",
			Inputs: map[string]any{
				"text": "a beautiful landscape",
				"clip": Ref("1", 1),
			},
		},
		"3": {
			ClassType: "EmptyLatentImage",
			Inputs: map[string]any{
				"width":      1024,
				"height":     1024,
				"batch_size": 1,
			},
		},
		"4": {
			ClassType: "KSampler",
			Inputs: map[string]any{
				"seed":         42,
				"steps":        20,
				"cfg":          7.0,
				"sampler_name": "euler",
				"scheduler":    "normal",
				"denoise":      1.0,
				"model":        Ref("1", 0),
				"positive":     Ref("2", 0),
				"negative":     Ref("5", 0),
				"latent_image": Ref("3", 0),
			},
		},
		"5": {
			ClassType: "CLIPTextEncode",
			Inputs: map[string]any{
				"text": "",
				"clip": Ref("1", 1),
			},
		},
		"6": {
			ClassType: "VAEDecode",
			Inputs: map[string]any{
				"samples": Ref("4", 0),
				"vae":     Ref("1", 2),
			},
		},
		"7": {
			ClassType: "SaveImage",
			Inputs: map[string]any{
				"filename_prefix": "ComfyUI",
				"images":          Ref("6", 0),
			},
		},
	}
}

// img2imgWorkflow replaces the empty latent with an encoded input image
// and samples at partial denoise, keeping the same checkpoint, prompt,
// decode, and save spine.
func img2imgWorkflow() Workflow {
	return Workflow{
		"1": {
			ClassType: "CheckpointLoaderSimple",
			Inputs: map[string]any{
				"ckpt_name": "flux1-dev.safetensors",
			},
		},
		"2": {
			ClassType: "CLIPTextEncode",
			Inputs: map[string]any{
				"text": "a beautiful landscape",
				"clip": Ref("1", 1),
			},
		},
		"3": {
			ClassType: "LoadImage",
			Inputs: map[string]any{
				"image": "input.png",
			},
		},
		"4": {
			ClassType: "KSampler",
			Inputs: map[string]any{
				"seed":         42,
				"steps":        20,
				"cfg":          7.0,
				"sampler_name": "euler",
				"scheduler":    "normal",
				"denoise":      0.65,
				"model":        Ref("1", 0),
				"positive":     Ref("2", 0),
				"negative":     Ref("5", 0),
				"latent_image": Ref("8", 0),
			},
		},
		"5": {
			ClassType: "CLIPTextEncode",
			Inputs: map[string]any{
				"text": "",
				"clip": Ref("1", 1),
			},
		},
		"6": {
			ClassType: "VAEDecode",
			Inputs: map[string]any{
				"samples": Ref("4", 0),
				"vae":     Ref("1", 2),
			},
		},
		"7": {
			ClassType: "SaveImage",
			Inputs: map[string]any{
				"filename_prefix": "ComfyUI",
				"images":          Ref("6", 0),
			},
		},
		"8": {
			ClassType: "VAEEncode",
			Inputs: map[string]any{
				"pixels": Ref("3", 0),
				"vae":    Ref("1", 2),
			},
		},
	}
}

// Validate checks that every reference pair points at a node present in
// the graph.
func (w Workflow) Validate() error {
	for nodeID, node := range w {
		for name, value := range node.Inputs {
			ref, ok := asReference(value)
			if !ok {
				continue
			}
			if _, exists := w[ref]; !exists {
				return fmt.Errorf("%w: node %s input %s references missing node %s",
					errors.ErrInvalidWorkflow, nodeID, name, ref)
			}
		}
	}
	return nil
}

// asReference reports whether an input value is a [nodeID, slot] pair and
// returns the referenced node ID.
func asReference(value any) (string, bool) {
	pair, ok := value.([]any)
	if !ok || len(pair) != 2 {
		return "", false
	}
	id, ok := pair[0].(string)
	if !ok {
		return "", false
	}
	switch pair[1].(type) {
	case int, float64:
		return id, true
	}
	return "", false
}
