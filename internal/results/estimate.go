package results

import "evision-results/internal/grades"

// Estimate predicts the degree classification from the modular table. Results
// from the assessments table are ignored since modules are repeated there.
func Estimate(rs []Result) (grades.DegreeEstimate, error) {
	var modules []grades.Weighted
	for _, r := range rs {
		if r.Source != SOURCE_MODULES {
			continue
		}
		modules = append(modules, grades.Weighted{
			Level:   r.FHEQLevel,
			Credits: r.Credits,
			Grade:   r.GradeInfo,
		})
	}
	return grades.Estimate(modules)
}
