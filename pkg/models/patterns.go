package models

// Photo-presence bucket keys.
const (
	PhotoWith    = "with_photo"
	PhotoWithout = "without_photo"
)

// PhotoKey returns the photo-presence bucket key for a post.
func PhotoKey(hasPhoto bool) string {
	if hasPhoto {
		return PhotoWith
	}
	return PhotoWithout
}

// BucketStats accumulates correct/total counts for one categorical bucket.
type BucketStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the bucket's accuracy ratio, or 0 for an empty bucket.
func (b *BucketStats) Accuracy() float64 {
	if b == nil || b.Total == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Total)
}

// LearnedPatterns is one training pass's snapshot of per-bucket accuracy.
// Each pass fully replaces the previous snapshot; buckets are never merged
// incrementally.
type LearnedPatterns struct {
	ByTimeOfDay map[TimeOfDay]*BucketStats `json:"time_patterns"`
	ByPostType  map[PostType]*BucketStats  `json:"type_patterns"`
	ByPhoto     map[string]*BucketStats    `json:"photo_patterns"`
	BySeason    map[Season]*BucketStats    `json:"season_patterns"`
}

// NewLearnedPatterns returns an empty snapshot. The two photo buckets are
// pre-seeded so both keys always exist.
func NewLearnedPatterns() *LearnedPatterns {
	return &LearnedPatterns{
		ByTimeOfDay: make(map[TimeOfDay]*BucketStats),
		ByPostType:  make(map[PostType]*BucketStats),
		ByPhoto: map[string]*BucketStats{
			PhotoWith:    {},
			PhotoWithout: {},
		},
		BySeason: make(map[Season]*BucketStats),
	}
}

// Observe folds one labeled record into the snapshot.
func (p *LearnedPatterns) Observe(r *TrainingRecord) {
	correct := r.CorrectAgainst(r.ModeratorDecision)

	timeBucket, ok := p.ByTimeOfDay[r.TimeOfDay]
	if !ok {
		timeBucket = &BucketStats{}
		p.ByTimeOfDay[r.TimeOfDay] = timeBucket
	}
	timeBucket.Total++

	typeBucket, ok := p.ByPostType[r.PostType]
	if !ok {
		typeBucket = &BucketStats{}
		p.ByPostType[r.PostType] = typeBucket
	}
	typeBucket.Total++

	photoBucket, ok := p.ByPhoto[PhotoKey(r.HasPhoto)]
	if !ok {
		photoBucket = &BucketStats{}
		p.ByPhoto[PhotoKey(r.HasPhoto)] = photoBucket
	}
	photoBucket.Total++

	seasonBucket, ok := p.BySeason[r.Season]
	if !ok {
		seasonBucket = &BucketStats{}
		p.BySeason[r.Season] = seasonBucket
	}
	seasonBucket.Total++

	if correct {
		timeBucket.Correct++
		typeBucket.Correct++
		photoBucket.Correct++
		seasonBucket.Correct++
	}
}
