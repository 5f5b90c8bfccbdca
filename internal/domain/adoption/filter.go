package adoption

// FilterAnimals returns the animals of catalog that pass every active predicate
// of criteria, in catalog order. The result never aliases catalog's backing
// array; an empty result is a valid outcome.
//
// A selected special-needs sub-category only requires the animal to be flagged
// as special-needs; the specific category is not compared.
func FilterAnimals(catalog []*Animal, criteria Criteria) []*Animal {
	result := make([]*Animal, 0, len(catalog))
	for _, a := range catalog {
		if Matches(a, criteria) {
			result = append(result, a)
		}
	}
	return result
}

// Matches evaluates all four predicates against one animal, cheapest first.
func Matches(a *Animal, c Criteria) bool {
	if c.Species != SpeciesAll && c.Species != "" && a.Species() != c.Species {
		return false
	}
	if !c.AgeRange.Contains(a.Age()) {
		return false
	}
	if len(c.Sizes) > 0 && !c.HasSize(a.Size()) {
		return false
	}
	if c.WantsSpecialNeeds() && !a.SpecialNeeds() {
		return false
	}
	return true
}
