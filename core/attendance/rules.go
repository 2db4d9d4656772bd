package attendance

import "sort"

// CompletedClasses returns the distinct classes having at least one attendance mark, sorted by name.
func CompletedClasses(marks []ClassMark) []string {
	seen := make(map[string]struct{}, len(marks))
	classes := make([]string, 0)
	for _, m := range marks {
		if m.ClassName == "" {
			continue
		}
		if _, ok := seen[m.ClassName]; ok {
			continue
		}
		seen[m.ClassName] = struct{}{}
		classes = append(classes, m.ClassName)
	}
	sort.Strings(classes)
	return classes
}

// ByStudent indexes the marks of a class by student ID.
func ByStudent(marks []ClassMark) map[string]Status {
	statuses := make(map[string]Status, len(marks))
	for _, m := range marks {
		statuses[m.StudentID] = m.Status
	}
	return statuses
}
