package generator

// TuningProfile holds the GPU runtime parameters for one memory tier.
type TuningProfile struct {
	MemoryManagement           string  `json:"memory_management"`
	BatchSize                  int     `json:"batch_size"`
	AttentionMode              string  `json:"attention_mode"`
	ModelPrecision             string  `json:"model_precision"`
	CacheModels                bool    `json:"cache_models"`
	MemoryFraction             float64 `json:"memory_fraction"`
	EnableSequentialCPUOffload bool    `json:"enable_sequential_cpu_offload,omitempty"`
}

// Tier boundaries in whole gigabytes, inclusive at the lower bound.
const (
	highMemoryThresholdGB   = 24
	mediumMemoryThresholdGB = 12
)

// TuningProfile picks the runtime tuning tier from the detected GPU
// memory, evaluated high to low. Cards under the medium threshold
// additionally offload model stages to the CPU.
func (g *Generator) TuningProfile() TuningProfile {
	switch {
	case g.GPUMemoryGB >= highMemoryThresholdGB:
		return TuningProfile{
			MemoryManagement: "high_memory",
			BatchSize:        4,
			AttentionMode:    "flash_attention",
			ModelPrecision:   "fp16",
			CacheModels:      true,
			MemoryFraction:   0.9,
		}
	case g.GPUMemoryGB >= mediumMemoryThresholdGB:
		return TuningProfile{
			MemoryManagement: "medium_memory",
			BatchSize:        2,
			AttentionMode:    "efficient_attention",
			ModelPrecision:   "fp16",
			CacheModels:      true,
			MemoryFraction:   0.8,
		}
	default:
		return TuningProfile{
			MemoryManagement:           "low_memory",
			BatchSize:                  1,
			AttentionMode:              "low_mem_attention",
			ModelPrecision:             "fp16",
			CacheModels:                false,
			MemoryFraction:             0.7,
			EnableSequentialCPUOffload: true,
		}
	}
}
