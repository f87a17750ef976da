package domain

// ProjectStatus is the verdict for one project of a BuildPlan.
type ProjectStatus uint8

const (
	// StatusUpToDate means the project's output is newer than every input.
	StatusUpToDate ProjectStatus = iota
	// StatusStale means the project must be rebuilt.
	StatusStale
)

func (s ProjectStatus) String() string {
	if s == StatusStale {
		return "stale"
	}
	return "up-to-date"
}

// ResolvedReference is a reference after resolution for one configuration.
type ResolvedReference struct {
	Name      string
	Kind      ReferenceKind
	Path      string
	CopyLocal bool
	System    bool
}

// ProjectPlan is the plan entry for one project.
type ProjectPlan struct {
	Name          string
	Path          string
	Configuration ConfigurationKey
	Output        string
	Status        ProjectStatus
	References    []ResolvedReference
	// CopyFiles are the files copied next to Output.
	CopyFiles *OutputFileSet
}

// BuildPlan lists projects in build order, dependencies first.
type BuildPlan struct {
	Root     string
	Projects []ProjectPlan
}

// Stale returns the projects that need a rebuild, in build order.
func (p *BuildPlan) Stale() []ProjectPlan {
	var out []ProjectPlan
	for _, pp := range p.Projects {
		if pp.Status == StatusStale {
			out = append(out, pp)
		}
	}
	return out
}
