package main

import (
	"io"

	"github.com/cutonbuminband/rcounting-go/internal/config"
	"github.com/cutonbuminband/rcounting-go/registry"
)

func loadAliasTable(r io.Reader) (*registry.AliasTable, error) {
	return config.LoadAliases(r)
}
