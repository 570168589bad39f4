package main

import "math/rand"

// randomTree returns the edges of a random spanning tree over nodes 1..n,
// listed in both directions and shuffled.
func randomTree(n int64, seed int64) (src, dst []int64) {
	rng := rand.New(rand.NewSource(seed))
	for child := int64(2); child <= n; child++ {
		parent := 1 + rng.Int63n(child-1)
		src = append(src, parent, child)
		dst = append(dst, child, parent)
	}
	rng.Shuffle(len(src), func(i, j int) {
		src[i], src[j] = src[j], src[i]
		dst[i], dst[j] = dst[j], dst[i]
	})
	return src, dst
}
