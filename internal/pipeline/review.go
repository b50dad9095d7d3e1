package pipeline

import (
	"sort"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

// Reviewer finds records in different identity buckets whose names are
// suspiciously close — usually typos or synonym spellings the exact-key
// grouper cannot see. It only reports; merging on fuzzy scores is never
// done.
type Reviewer struct {
	cfg config.Config
	idx *library.Index
}

func NewReviewer(cfg config.Config, records []*internal.PlantRecord) *Reviewer {
	return &Reviewer{cfg: cfg, idx: library.BuildIndex(records)}
}

// Pairs returns cross-bucket near-duplicates sorted best-first. A pair is
// LIKELY when it clears the OK threshold and its record has no second
// candidate within the gap threshold; everything else above the review
// threshold is POSSIBLE.
func (r *Reviewer) Pairs() []internal.ReviewPair {
	type scored struct {
		other string
		score float64
	}
	candidatesByFile := map[string][]scored{}

	for _, record := range r.idx.Records {
		left := record.FileName
		leftText := reviewText(record)
		leftTokens := util.Tokenize(leftText)

		seen := map[string]struct{}{}
		for _, token := range leftTokens {
			for otherFile := range r.idx.TokenToFiles[token] {
				if otherFile == left {
					continue
				}
				if r.idx.KeyByFile[otherFile] == r.idx.KeyByFile[left] {
					continue
				}
				if _, done := seen[otherFile]; done {
					continue
				}
				seen[otherFile] = struct{}{}

				other := r.idx.ByFile[otherFile]
				score := scoreNames(leftText, reviewText(other), leftTokens, util.Tokenize(reviewText(other)))
				if score < r.cfg.ReviewThreshold {
					continue
				}
				candidatesByFile[left] = append(candidatesByFile[left], scored{other: otherFile, score: score})
			}
		}
		sort.Slice(candidatesByFile[left], func(i, j int) bool {
			return candidatesByFile[left][i].score > candidatesByFile[left][j].score
		})
	}

	emitted := map[string]struct{}{}
	var pairs []internal.ReviewPair
	for _, record := range r.idx.Records {
		left := record.FileName
		candidates := candidatesByFile[left]
		for i, candidate := range candidates {
			pairKey := pairID(left, candidate.other)
			if _, done := emitted[pairKey]; done {
				continue
			}
			emitted[pairKey] = struct{}{}

			status := internal.ReviewPossible
			if candidate.score >= r.cfg.ReviewOKThreshold {
				gap := candidate.score
				if i+1 < len(candidates) {
					gap = candidate.score - candidates[i+1].score
				}
				if gap >= r.cfg.ReviewGapThreshold {
					status = internal.ReviewLikely
				}
			}

			other := r.idx.ByFile[candidate.other]
			pairs = append(pairs, internal.ReviewPair{
				Status:    status,
				Score:     candidate.score,
				LeftFile:  left,
				LeftName:  displayName(record),
				LeftKey:   r.idx.KeyByFile[left],
				RightFile: candidate.other,
				RightName: displayName(other),
				RightKey:  r.idx.KeyByFile[candidate.other],
			})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		return pairs[i].LeftFile < pairs[j].LeftFile
	})
	return pairs
}

func scoreNames(left, right string, leftTokens, rightTokens []string) float64 {
	dice := util.DiceCoefficient(left, right)
	if len(leftTokens) == 0 || len(rightTokens) == 0 {
		return dice
	}

	set := map[string]struct{}{}
	for _, t := range rightTokens {
		set[t] = struct{}{}
	}
	overlap := 0
	for _, t := range leftTokens {
		if _, ok := set[t]; ok {
			overlap++
		}
	}
	tokenScore := float64(overlap) / float64(len(leftTokens))
	return 0.65*dice + 0.35*tokenScore
}

func reviewText(record *internal.PlantRecord) string {
	if s := util.Fold(record.ScientificName); s != "" {
		return s
	}
	return util.Fold(record.Name)
}

func displayName(record *internal.PlantRecord) string {
	if record.ScientificName != "" {
		return record.ScientificName
	}
	return record.Name
}

func pairID(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
