// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package intset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateFillsDefaults(t *testing.T) {
	cfg := Config{NumThreads: 4, Capacity: 128}
	require := assert.New(t)

	require.NoError(cfg.Validate())
	require.Equal(float64(DefaultLoadFactor), cfg.LoadFactor)
	require.Equal(DefaultExpansionRate, cfg.ExpansionRate)
	require.NotNil(cfg.Logger)
	require.NotNil(cfg.TimeProvider)
	require.NotNil(cfg.MetricsCollector)
}

func TestConfig_ValidatePreservesExplicitValues(t *testing.T) {
	cfg := Config{
		NumThreads:    4,
		Capacity:      128,
		LoadFactor:    0.6,
		ExpansionRate: 3,
		Logger:        NoOpLogger{},
	}
	require := assert.New(t)
	require.NoError(cfg.Validate())
	require.Equal(0.6, cfg.LoadFactor)
	require.Equal(3, cfg.ExpansionRate)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(8, 1024)
	require := assert.New(t)
	require.Equal(8, cfg.NumThreads)
	require.Equal(1024, cfg.Capacity)
	require.Equal(float64(DefaultLoadFactor), cfg.LoadFactor)
	require.NotNil(cfg.TimeProvider)
	require.Greater(cfg.TimeProvider.Now(), int64(0))
}
