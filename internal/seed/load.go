package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a seed file. Collections missing from the file are left empty;
// unknown keys are rejected so typos do not silently drop data.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()

	var data Data
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&data); err != nil {
		return Data{}, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return data, nil
}
