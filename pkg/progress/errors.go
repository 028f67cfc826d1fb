// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progress

import "errors"

var (
	// ErrUnknownLevel indicates the level id is not in the catalog.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrLevelLocked indicates the level is not unlocked for the active player.
	ErrLevelLocked = errors.New("level is locked")

	// ErrInvalidRole indicates a chat turn with an unknown author.
	ErrInvalidRole = errors.New("invalid chat role")
)
