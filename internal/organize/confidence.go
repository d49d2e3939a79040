// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import "github.com/pdiddy/noteforge/pkg/types"

// score applies the shared additive confidence formula: a base score, a
// capped per-entity contribution, a capped per-section contribution for
// sections beyond the first, and a flat structural bonus. The result is
// clamped to [0,100]. The formula is a pure function of its inputs, so a
// given organized model always scores the same.
func score(w types.ScoreWeights, entities, sections int, structural bool) int {
	if entities == 0 && sections == 0 {
		return 0
	}

	s := w.Base

	entityPts := entities * w.PerEntity
	if entityPts > w.EntityCap {
		entityPts = w.EntityCap
	}
	s += entityPts

	if sections > 1 {
		sectionPts := (sections - 1) * w.PerSection
		if sectionPts > w.SectionCap {
			sectionPts = w.SectionCap
		}
		s += sectionPts
	}

	if structural {
		s += w.StructuralBonus
	}

	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}
