package journey

// AudienceTag restricts a path, module or lesson to one audience.
// The tag sits on every level of the tree independently.
type AudienceTag string

const (
	AudienceAll          AudienceTag = "all"
	AudienceImmigrant    AudienceTag = "immigrant"
	AudienceNonImmigrant AudienceTag = "nonImmigrant"
)

// Valid reports whether the tag is one of the known values. The empty
// tag is valid and means unrestricted, same as "all".
func (t AudienceTag) Valid() bool {
	switch t {
	case "", AudienceAll, AudienceImmigrant, AudienceNonImmigrant:
		return true
	}
	return false
}

// ShouldShow reports whether a node with the given tag is visible to a
// viewer with the given variant. True iff the tag is unset or "all",
// or the variant is set and equals the tag. A viewer with no resolved
// variant (or variant "all") never sees variant-specific content.
func ShouldShow(tag, variant AudienceTag) bool {
	if tag == "" || tag == AudienceAll {
		return true
	}
	return variant == tag
}

// FilterLessons keeps the lessons visible to the variant
func FilterLessons(lessons []Lesson, variant AudienceTag) []Lesson {
	out := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		if ShouldShow(l.UserType, variant) {
			out = append(out, l)
		}
	}
	return out
}

// FilterModules keeps the modules visible to the variant and filters
// each kept module's lessons on their own tags.
func FilterModules(modules []Module, variant AudienceTag) []Module {
	out := make([]Module, 0, len(modules))
	for _, m := range modules {
		if !ShouldShow(m.UserType, variant) {
			continue
		}
		m.Lessons = FilterLessons(m.Lessons, variant)
		out = append(out, m)
	}
	return out
}

// FilterPaths re-applies the audience rule to an already-fetched tree.
// The content query filters server-side with the same rule; this is a
// local re-validation against query drift. Each level is evaluated on
// its own tag, never by inheriting the parent's decision: a module
// tagged "all" inside a variant-specific path is still evaluated as
// "all" here.
func FilterPaths(paths []Path, variant AudienceTag) []Path {
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		if !ShouldShow(p.UserType, variant) {
			continue
		}
		p.Modules = FilterModules(p.Modules, variant)
		out = append(out, p)
	}
	return out
}

// FilterStats summarizes how much of a tree the rule hides for a
// variant. Used by validation helpers and the admin dashboard.
type FilterStats struct {
	TotalNodes   int     `json:"total_nodes"`
	VisibleNodes int     `json:"visible_nodes"`
	HiddenRatio  float64 `json:"hidden_ratio"`
}

// ComputeFilterStats counts paths, modules and lessons before and
// after filtering for the given variant.
func ComputeFilterStats(paths []Path, variant AudienceTag) FilterStats {
	stats := FilterStats{}
	for _, p := range paths {
		stats.TotalNodes++
		if ShouldShow(p.UserType, variant) {
			stats.VisibleNodes++
		}
		for _, m := range p.Modules {
			stats.TotalNodes++
			if ShouldShow(m.UserType, variant) {
				stats.VisibleNodes++
			}
			for _, l := range m.Lessons {
				stats.TotalNodes++
				if ShouldShow(l.UserType, variant) {
					stats.VisibleNodes++
				}
			}
		}
	}
	if stats.TotalNodes > 0 {
		stats.HiddenRatio = float64(stats.TotalNodes-stats.VisibleNodes) / float64(stats.TotalNodes)
	}
	return stats
}
