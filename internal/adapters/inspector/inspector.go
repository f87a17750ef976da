// Package inspector reads the dependency lists of binary modules.
package inspector

import (
	"debug/elf"
	"debug/pe"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	elfMagic = []byte("\x7fELF")
	peMagic  = []byte("MZ")
)

// Inspector implements ports.ModuleInspector for ELF and PE modules.
type Inspector struct{}

var _ ports.ModuleInspector = (*Inspector)(nil)

// New creates an Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Dependencies returns the imported library names of the module at path,
// sorted and without duplicates. Anything that is not a readable ELF or PE
// module fails with domain.ErrModuleInspectionFailed.
func (i *Inspector) Dependencies(path string) ([]string, error) {
	// #nosec G304 -- path is a resolved artifact
	f, err := os.Open(path)
	if err != nil {
		return nil, inspectionError(path, err)
	}
	defer func() { _ = f.Close() }()

	magic := make([]byte, len(elfMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, inspectionError(path, err)
	}
	magic = magic[:n]

	var libs []string
	switch {
	case slices.Equal(magic, elfMagic):
		libs, err = elfImports(f)
	case len(magic) >= len(peMagic) && slices.Equal(magic[:len(peMagic)], peMagic):
		libs, err = peImports(f)
	default:
		err = zerr.New("unrecognised module format")
	}
	if err != nil {
		return nil, inspectionError(path, err)
	}

	slices.SortFunc(libs, func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) })
	return slices.CompactFunc(libs, strings.EqualFold), nil
}

func elfImports(r io.ReaderAt) ([]string, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	libs, err := f.ImportedLibraries()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	}
	return libs, err
}

// peImports derives the imported libraries from the import table, whose
// entries read "symbol:library".
func peImports(r io.ReaderAt) ([]string, error) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	symbols, err := f.ImportedSymbols()
	if err != nil {
		return nil, err
	}
	libs := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, lib, ok := strings.Cut(s, ":"); ok && lib != "" {
			libs = append(libs, lib)
		}
	}
	return libs, nil
}

func inspectionError(path string, cause error) error {
	err := zerr.Wrap(errors.Join(domain.ErrModuleInspectionFailed, cause), "cannot read module dependencies")
	return zerr.With(err, "path", path)
}
