package interfaces

import "context"

type HealthStatus struct {
	Status          string `json:"status"`
	PoolInitialized bool   `json:"pool_initialized"`
	Participants    int    `json:"participants"`
	Subscribers     int    `json:"subscribers"`
	Timestamp       int64  `json:"timestamp"`
}

type HealthService interface {
	Check(ctx context.Context) (*HealthStatus, error)
}
