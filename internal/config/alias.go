// Package config loads the two flat configuration file formats spec §6
// names: the alias file and the side-thread registry INI file.
package config

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/cutonbuminband/rcounting-go/registry"
)

// LoadAliases reads the alias file format spec §6 defines: one line per
// canonical username, `canonical,alias1,alias2,...`, blank lines and
// lines starting with # ignored. It returns a registry.AliasTable ready
// for Resolve.
func LoadAliases(r io.Reader) (*registry.AliasTable, error) {
	table := registry.NewAliasTable()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		canonical := fields[0]
		if canonical == "" {
			return nil, errors.Errorf("config: alias file line %d has an empty canonical name", lineNo)
		}
		table.Register(canonical, fields[1:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "config: reading alias file")
	}
	return table, nil
}
