package impl

// outlierBandRatio is the accepted deviation from the mean yield. A farm is
// an outlier when its yield lies 30% or more below or above the average
// yield of all farms.
const outlierBandRatio = 0.3

// excludeOutliers keeps only farms whose yield lies strictly inside the
// (0.7*mean, 1.3*mean) band. Records exactly at a bound are excluded. The
// caller guarantees a non-empty input; the pipeline fails earlier when no
// farms exist, so the mean is always defined.
func excludeOutliers(farms []*extendedFarm) []*extendedFarm {
	var sum float64
	for _, farm := range farms {
		sum += farm.Yield
	}
	mean := sum / float64(len(farms))

	lower := mean * (1 - outlierBandRatio)
	upper := mean * (1 + outlierBandRatio)

	kept := make([]*extendedFarm, 0, len(farms))
	for _, farm := range farms {
		if farm.Yield > lower && farm.Yield < upper {
			kept = append(kept, farm)
		}
	}

	return kept
}
