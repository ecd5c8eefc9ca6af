// Package domain
package domain

// Snapshot is the normalized result of one extraction cycle. Every leaf is
// independently optional: nil means the matching sensor was not found or
// reported no value, and serializes as JSON null.
type Snapshot struct {
	CPU  CPUStats  `json:"cpu"`
	RAM  RAMStats  `json:"ram"`
	GPU  GPUStats  `json:"gpu"`
	VRAM VRAMStats `json:"vram"`
}

type CPUStats struct {
	Load  *float64 `json:"load"`
	TempC *float64 `json:"temp_c"`
}

type RAMStats struct {
	UsedPct *float64 `json:"used_pct"`
	UsedGB  *float64 `json:"used_gb"`
	TotalGB *float64 `json:"total_gb"`
}

type GPUStats struct {
	Load  *float64 `json:"load"`
	TempC *float64 `json:"temp_c"`
}

type VRAMStats struct {
	UsedPct *float64 `json:"used_pct"`
	UsedGB  *float64 `json:"used_gb"`
	TotalGB *float64 `json:"total_gb"`
}
