package diarize

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
)

// Clusterer partitions feature vectors into at most k groups and
// returns a 1-indexed label per input vector. Implementations must be
// deterministic for identical input and configuration so that repeated
// runs over the same file agree.
type Clusterer interface {
	Cluster(vectors [][]float64, k int) ([]int, error)
}

// KMeans is a plain Lloyd's-iteration k-means clusterer over Euclidean
// distance. The seed is explicit; there is no hidden global randomness.
type KMeans struct {
	MaxIterations int
	Seed          int64
}

func NewKMeans(seed int64) *KMeans {
	return &KMeans{MaxIterations: 100, Seed: seed}
}

// Cluster labels every vector with its nearest final centroid. If k
// exceeds the number of vectors, k is reduced to match. Initial
// centroids are k distinct input vectors drawn from a seeded
// permutation. Assignment ties go to the lowest centroid index.
func (km *KMeans) Cluster(vectors [][]float64, k int) ([]int, error) {
	n := len(vectors)
	if n == 0 {
		return nil, apperrors.ErrNoFeatures
	}
	if k <= 0 {
		return nil, apperrors.ErrClusterCount
	}
	if k > n {
		k = n
	}

	rng := rand.New(rand.NewSource(km.Seed))
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), vectors[perm[c]]...)
	}

	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}

	dim := len(vectors[0])
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearest(v, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			counts[labels[i]]++
			floats.Add(sums[labels[i]], v)
		}
		for c := range centroids {
			// An emptied cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			floats.ScaleTo(centroids[c], 1/float64(counts[c]), sums[c])
		}
	}

	out := make([]int, n)
	for i, l := range labels {
		out[i] = l + 1
	}
	return out, nil
}

func nearest(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := floats.Distance(v, centroids[0], 2)
	for c := 1; c < len(centroids); c++ {
		if d := floats.Distance(v, centroids[c], 2); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
