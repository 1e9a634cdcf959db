package isa

import (
	"github.com/Manu343726/isadb/pkg/isa/dictionary"
	"github.com/Manu343726/isadb/pkg/isa/fixtures"
	"github.com/Manu343726/isadb/pkg/utils"
	"go.uber.org/multierr"
)

// Returns the builtin fixtures of an architecture extended with the given
// fixture files, in order. Every file is loaded even if a previous one
// failed, all errors are returned together.
func LoadFixtures(arch dictionary.Architecture, paths ...string) (*fixtures.Set, error) {
	set := fixtures.Builtin(arch)

	var errs error

	for _, path := range paths {
		file, err := fixtures.LoadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		merged, err := set.Merge(file)
		if err != nil {
			errs = multierr.Append(errs, utils.MakeError(err, "%v", path))
			continue
		}

		set = merged
	}

	if errs != nil {
		return nil, errs
	}

	return set, nil
}
