package matrix

// Labels is an ordered per-sample class assignment, used only for presentation.
// The decomposition never consumes it.
type Labels []string

// Classes returns the distinct labels in first-seen order.
func (l Labels) Classes() []string {
	seen := make(map[string]struct{})
	classes := make([]string, 0)
	for _, label := range l {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		classes = append(classes, label)
	}
	return classes
}

// Indices returns for each class the sample indices carrying it.
func (l Labels) Indices() map[string][]int {
	out := make(map[string][]int)
	for i, label := range l {
		out[label] = append(out[label], i)
	}
	return out
}
