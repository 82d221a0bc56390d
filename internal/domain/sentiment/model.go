package sentiment

// Label classifies the polarity of a sentence or item
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Labels lists all labels in presentation order
func Labels() []Label {
	return []Label{Positive, Negative, Neutral}
}

// Tally holds per-label counts for a single tag
type Tally struct {
	Positive int
	Negative int
	Neutral  int
}

// Add accumulates another tally into this one
func (t *Tally) Add(other Tally) {
	t.Positive += other.Positive
	t.Negative += other.Negative
	t.Neutral += other.Neutral
}

// Count returns the count for a label
func (t Tally) Count(label Label) int {
	switch label {
	case Positive:
		return t.Positive
	case Negative:
		return t.Negative
	case Neutral:
		return t.Neutral
	}
	return 0
}

// Sum returns the total number of counted classifications
func (t Tally) Sum() int {
	return t.Positive + t.Negative + t.Neutral
}

// TagResult is the finalized outcome for one tag
type TagResult struct {
	Tag string

	// Tally holds the per-label sentence counts for the tag
	Tally Tally

	// Corpus holds the normalized, non-empty item texts in processing order
	Corpus []string

	// Processed is the number of items successfully classified. It is at
	// most the requested target and may be lower if the source ran out of
	// matching items.
	Processed int
}

// RunResult maps sentiment labels to per-tag counts for a completed run.
// Results are ordered exactly as the input tag list.
type RunResult struct {
	Tags    []string
	Results []TagResult
}

// Series returns per-label count sequences ordered by input tag
func (r RunResult) Series() map[Label][]int {
	series := map[Label][]int{
		Positive: make([]int, 0, len(r.Results)),
		Negative: make([]int, 0, len(r.Results)),
		Neutral:  make([]int, 0, len(r.Results)),
	}

	for _, result := range r.Results {
		for _, label := range Labels() {
			series[label] = append(series[label], result.Tally.Count(label))
		}
	}

	return series
}

// Progress reports how far a tag's analysis has advanced
type Progress struct {
	Tag       string
	Processed int
	Target    int
	Done      bool
}
