// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progress

import (
	"context"

	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
)

// Availability of a level for the level-select screen.
type Availability string

const (
	Locked    Availability = "locked"
	Unlocked  Availability = "unlocked"
	Completed Availability = "completed"
)

// LevelStatus is one row of the level-select screen.
type LevelStatus struct {
	Level        level.Level
	Availability Availability
	Attempts     int
}

// LevelStatuses lists every catalog level with its availability and attempt
// count, in catalog order.
func (t *Tracker) LevelStatuses(ctx context.Context) ([]LevelStatus, error) {
	gs, err := state.LoadGameState(ctx, t.store)
	if err != nil {
		return nil, err
	}

	developer := false
	if t.access != nil {
		if developer, err = t.access.IsDeveloper(ctx); err != nil {
			return nil, err
		}
	}

	levels := t.catalog.Levels()
	out := make([]LevelStatus, 0, len(levels))
	for _, l := range levels {
		st := LevelStatus{Level: l, Availability: Locked}
		switch {
		case gs.IsCompleted(l.ID):
			st.Availability = Completed
		case l.ID <= gs.CurrentLevel || developer:
			st.Availability = Unlocked
		}
		if rt := gs.Runtime(l.ID); rt != nil {
			st.Attempts = rt.Attempts
		}
		out = append(out, st)
	}
	return out, nil
}
