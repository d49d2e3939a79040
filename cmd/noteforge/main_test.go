// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/noteforge/pkg/types"
)

func TestLoadConfig_ScoreWeights(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("engine.weights.research-notes.base", 50)
	viper.Set("engine.weights.research-notes.per_entity", 2)

	cfg := loadConfig()

	w := cfg.Engine.WeightsFor(types.FormatResearchNotes)
	assert.Equal(t, 50, w.Base)
	assert.Equal(t, 2, w.PerEntity)

	// Fields left unset keep their defaults.
	assert.Equal(t, types.DefaultScoreWeights().EntityCap, w.EntityCap)
	assert.Equal(t, types.DefaultScoreWeights().StructuralBonus, w.StructuralBonus)

	// Formats with no keys stay on the stock weights.
	assert.Equal(t, types.DefaultScoreWeights(), cfg.Engine.WeightsFor(types.FormatTaskLists))
}

func TestLoadConfig_NoWeightKeys(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg := loadConfig()
	assert.Nil(t, cfg.Engine.Weights)
}

func TestLoadConfig_PoolAndRecovery(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("pool.max_workers", 8)
	viper.Set("recovery.retry_delay", "250ms")
	viper.Set("recovery.enable_fallback", false)

	cfg := loadConfig()

	assert.Equal(t, 8, cfg.Pool.MaxWorkers)
	assert.Equal(t, 250*time.Millisecond, cfg.Recovery.RetryDelay)
	assert.False(t, cfg.Recovery.EnableFallback)
	assert.True(t, cfg.Recovery.EnableCaching)
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("meeting-notes")
	assert.NoError(t, err)
	assert.Equal(t, types.FormatMeetingNotes, f)

	_, err = parseFormat("poetry")
	assert.Error(t, err)
}
