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

package fixtures

import (
	"math/rand"
	"sort"
)

// SolitonDistribution returns a one-based CDF for the ideal soliton
// distribution over {1..n}, ported unchanged from google-gofountain's
// degree-distribution machinery (it originally chose how many source
// blocks to XOR into a fountain-code block; here it chooses how large a
// synthetic churn -- the number of symbols swapped between two otherwise
// equal fixture sets -- should be, so generated test cases aren't all the
// same size).
func SolitonDistribution(n int) []float64 {
	cdf := make([]float64, n+1)
	cdf[1] = 1 / float64(n)
	for i := 2; i < len(cdf); i++ {
		cdf[i] = cdf[i-1] + (1 / (float64(i) * float64(i-1)))
	}
	return cdf
}

// PickDegree returns the smallest index i such that cdf[i] > r for a
// random r, ported from google-gofountain's pickDegree. cdf must be sorted
// ascending (as SolitonDistribution's output is).
func PickDegree(random *rand.Rand, cdf []float64) int {
	r := random.Float64()
	d := sort.SearchFloat64s(cdf, r)
	if cdf[d] > r {
		return d
	}
	if d < len(cdf)-1 {
		return d + 1
	}
	return len(cdf) - 1
}

// SampleDistinct picks count distinct integers from [0,max) uniformly at
// random, sorted ascending, ported from google-gofountain's sampleUniform.
// If count >= max it returns every index without consuming the RNG.
func SampleDistinct(random *rand.Rand, count, max int) []int {
	if count >= max {
		picks := make([]int, max)
		for i := range picks {
			picks[i] = i
		}
		return picks
	}

	picks := make([]int, count)
	seen := make(map[int]bool, count)
	for i := 0; i < count; i++ {
		p := random.Intn(max)
		for seen[p] {
			p = random.Intn(max)
		}
		picks[i] = p
		seen[p] = true
	}
	sort.Ints(picks)
	return picks
}

// RandomChurnSize draws a soliton-distributed churn size in [1,maxChurn],
// giving generated fixtures a realistic spread of difference sizes instead
// of always exercising the same d.
func RandomChurnSize(random *rand.Rand, maxChurn int) int {
	if maxChurn <= 0 {
		return 0
	}
	cdf := SolitonDistribution(maxChurn)
	return PickDegree(random, cdf)
}
