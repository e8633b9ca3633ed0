package collab

// AveragePopularity returns the mean track popularity per artist key over
// every appearance of the artist, solo tracks included. Appearances with
// missing popularity count neither in the sum nor in the count, so an
// artist seen only on such tracks has no entry.
func AveragePopularity(apps []Appearance) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, app := range apps {
		if app.Popularity == nil {
			continue
		}
		for _, r := range distinctArtists(app.Artists) {
			sums[r.Key] += *app.Popularity
			counts[r.Key]++
		}
	}

	avg := make(map[string]float64, len(sums))
	for k, s := range sums {
		avg[k] = s / float64(counts[k])
	}
	return avg
}
