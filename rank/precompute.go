// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package rank

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// precomputeBatchSize is how many documents go into one encoder call
// during warm-up. Small enough to keep request payloads bounded, large
// enough to amortize the round trip.
const precomputeBatchSize = 32

// DefaultPoolSize returns the default worker pool size for bulk
// embedding: half the CPUs, minimum 1.
func DefaultPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}

func (s *EmbeddingScorer) precompute(ctx context.Context, poolSize int) error {
	if poolSize < 1 {
		poolSize = DefaultPoolSize()
	}

	docs := s.store.Documents()
	missing := make([]int, 0, len(docs))
	for i, doc := range docs {
		if _, ok := s.lookup(ctx, doc.Id); !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(missing); start += precomputeBatchSize {
		end := start + precomputeBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.embedBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		s.logger.Error("vector precompute failed", "documents", len(missing), "err", firstErr)
		return firstErr
	}
	s.logger.Debug("vector precompute complete", "documents", len(missing), "workers", poolSize)
	return nil
}
