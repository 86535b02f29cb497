// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fixtures provides generators for deterministic, reproducible test
// data; no other package in this module imports it. It carries over two pieces of
// google-gofountain's machinery that RIBLT itself has no use for (RIBLT's
// own index mapper needs a frozen splitmix64, not a general-purpose PRNG)
// but that are exactly what a test suite generating large synthetic symbol
// universes wants: a PRNG whose output is pinned by algorithm rather than
// by math/rand's (unspecified, version-dependent) internals, so fixtures
// regenerate identically across Go releases.
package fixtures

import "math"

// MersenneTwister64 is a 64-bit MT19937 PRNG after Nishimura. Satisfies
// math/rand.Source64.
type MersenneTwister64 struct {
	mt          [312]uint64
	index       int
	initialized bool
}

// NewMersenneTwister64 creates a 64-bit MT19937 PRNG seeded with seed.
func NewMersenneTwister64(seed int64) *MersenneTwister64 {
	t := &MersenneTwister64{}
	t.Seed(seed)
	return t
}

// Seed reinitializes the generator state from seed.
func (t *MersenneTwister64) Seed(seed int64) {
	t.initialize(uint64(seed))
}

// Int63 returns the low 63 bits of the next Uint64 output, satisfying
// rand.Source.
func (t *MersenneTwister64) Int63() int64 {
	return int64(t.Uint64() & math.MaxInt64)
}

func (t *MersenneTwister64) initialize(seed uint64) {
	t.index = 0
	t.mt[0] = seed
	for i := 1; i < len(t.mt); i++ {
		t.mt[i] = 6364136223846793005*(t.mt[i-1]^(t.mt[i-1]>>62)) + uint64(i)
	}
	t.initialized = true
}

// Uint64 returns the next pseudo-random value from the twister, satisfying
// rand.Source64.
func (t *MersenneTwister64) Uint64() uint64 {
	if !t.initialized {
		t.initialize(5489)
	}
	if t.index == 0 {
		t.generateUntempered()
	}

	y := t.mt[t.index]
	t.index++
	if t.index >= len(t.mt) {
		t.index = 0
	}
	y ^= (y >> 29) & 0x5555555555555555
	y ^= (y << 17) & 0x71d67fffeda60000
	y ^= (y << 37) & 0xfff7eee000000000
	y ^= y >> 43

	return y
}

func (t *MersenneTwister64) generateUntempered() {
	mag01 := [2]uint64{0x0, 0xb5026f5aa96619e9}
	for i := 0; i < len(t.mt); i++ {
		y := (t.mt[i] & 0xffffffff80000000) | (t.mt[(i+1)%len(t.mt)] & 0x7fffffff)
		t.mt[i] = (t.mt[(i+156)%len(t.mt)] ^ (y >> 1)) ^ mag01[y&0x01]
	}
}
