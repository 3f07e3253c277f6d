package service

import (
	"context"
	"time"

	"github.com/seededlabs/seedpool/errors"
	"github.com/seededlabs/seedpool/events"
	"github.com/seededlabs/seedpool/interfaces"
	"github.com/seededlabs/seedpool/staking"
	"github.com/seededlabs/seedpool/store"
)

type HealthServiceImpl struct {
	engine *staking.Engine
	stakes store.StakeStore
	bus    *events.EventBus
}

func NewHealthService(engine *staking.Engine, stakes store.StakeStore, bus *events.EventBus) *HealthServiceImpl {
	return &HealthServiceImpl{engine: engine, stakes: stakes, bus: bus}
}

func (hs *HealthServiceImpl) Check(ctx context.Context) (*interfaces.HealthStatus, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	status := &interfaces.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	}

	if _, err := hs.engine.Pool(); err != nil {
		if errors.CodeOf(err) != errors.ErrCodePoolNotInitialized {
			status.Status = "degraded"
		}
	} else {
		status.PoolInitialized = true
	}

	if records, err := hs.stakes.GetAll(); err == nil {
		status.Participants = len(records)
	}
	if hs.bus != nil {
		status.Subscribers = hs.bus.GetTotalSubscriptions()
	}

	return status, nil
}
