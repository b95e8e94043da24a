package config

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/cutonbuminband/rcounting-go/registry"
)

// LoadRegistry reads the `[threads]` section of an INI-style file (spec
// §6: "keys are side-thread root ids, values are descriptor names")
// and binds each into reg.
func LoadRegistry(reg *registry.Registry, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "config: reading registry file")
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return errors.Wrap(err, "config: parsing registry ini")
	}
	section, err := cfg.GetSection("threads")
	if err != nil {
		return errors.Wrap(err, "config: registry file has no [threads] section")
	}
	for _, key := range section.Keys() {
		reg.Bind(key.Name(), key.String())
	}
	return nil
}
