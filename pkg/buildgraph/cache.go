package buildgraph

import (
	"encoding/gob"
	"os"
)

// WriteCache stores the realized graph in file. The format is an internal
// detail; only ReadCache from the same daedalus version is guaranteed to
// understand it.
func WriteCache(file string, graph *Graph) error {
	handle, err := os.Create(file)
	if err != nil {
		return err
	}
	defer handle.Close()

	encoder := gob.NewEncoder(handle)
	err = encoder.Encode(graph.config)
	if err != nil {
		return err
	}

	return encoder.Encode(graph.targets)
}

// ReadCache loads a graph previously stored with WriteCache.
func ReadCache(file string) (*Graph, error) {
	handle, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	decoder := gob.NewDecoder(handle)

	var config Config
	err = decoder.Decode(&config)
	if err != nil {
		return nil, err
	}

	var targets []*Target
	err = decoder.Decode(&targets)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}

	return &Graph{targets: targets, byName: byName, config: config}, nil
}
