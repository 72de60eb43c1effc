package classify

// An Aggregator rolls a ranking along the class hierarchy, e.g. folding the
// scores of "city of the United States" and "village" into "human
// settlement". Classify dispatches to one of the two directions below;
// substituting a real implementation does not touch the combiner.
type Aggregator interface {
	Aggregate(Ranking) Ranking
}

// Superclasses rolls candidate scores up into their superclasses
// (Wikidata property P279).
//
// Not implemented yet: rankings currently pass through unchanged.
type Superclasses struct{}

func (Superclasses) Aggregate(r Ranking) Ranking { return r }

// Subclasses rolls candidate scores down into their subclasses.
//
// Not implemented yet: rankings currently pass through unchanged.
type Subclasses struct{}

func (Subclasses) Aggregate(r Ranking) Ranking { return r }
