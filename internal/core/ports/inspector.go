package ports

// ModuleInspector reads the declared dependency list of a binary module.
//
//go:generate mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type ModuleInspector interface {
	// Dependencies returns the file names the module at path declares as dependencies.
	Dependencies(path string) ([]string, error)
}
