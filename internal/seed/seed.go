// Package seed writes sample `date` pairs for feeding a pipeline.
package seed

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"minnow/internal/common/errors"
	"minnow/internal/common/properties"
	"minnow/internal/processors/date"

	"github.com/google/uuid"
)

// MaxTimestamp bounds the generated instants: seconds since the epoch in [0, 2^32).
const MaxTimestamp = int64(1) << 32

type Generator struct {
	rng     *rand.Rand
	newName func() string
}

// NewGenerator uses rng for timestamps; nil seeds from the clock.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, newName: uuid.NewString}
}

// Timestamp returns a random instant in UTC.
func (g *Generator) Timestamp() time.Time {
	return time.Unix(g.rng.Int63n(MaxTimestamp), 0).UTC()
}

// Write creates count pairs in dir, each named by a fresh UUID with
// properties `type = date` and the formatted instant as payload. It returns
// the pair names in creation order.
func (g *Generator) Write(dir string, count int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError("mkdir", dir, err)
	}

	meta := properties.Properties{properties.TypeKey: date.TypeDate}
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := g.newName()
		if err := properties.WriteFile(filepath.Join(dir, name+properties.Extension), meta); err != nil {
			return names, err
		}

		dataPath := filepath.Join(dir, name)
		payload := g.Timestamp().Format(date.Layout)
		if err := os.WriteFile(dataPath, []byte(payload), 0o644); err != nil {
			return names, errors.NewIOError("write", dataPath, err)
		}
		names = append(names, name)
	}
	return names, nil
}
