package knowledge

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFromFile replaces knowledge collections from a YAML file mapping
// collection names to record sequences. Awards and brands may be listed
// as plain strings; they are normalized to {name: ...} records.
// Returns the number of records written per collection.
func SeedFromFile(ctx context.Context, store *Store, path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var raw map[string][]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	counts := make(map[string]int, len(raw))
	for name, items := range raw {
		records := NormalizeAll(items)
		if err := store.ReplaceCollection(ctx, name, records); err != nil {
			return nil, fmt.Errorf("seeding collection %s: %w", name, err)
		}
		counts[name] = len(records)
	}
	return counts, nil
}
