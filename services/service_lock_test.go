package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lockMapSize() int {
	locksMu.Lock()
	defer locksMu.Unlock()
	return len(locks)
}

// a entrada do mapa some no último unlock; coleções já tocadas não acumulam
func TestLockCollectionEvictsOnLastUnlock(t *testing.T) {
	unlock := lockCollection(formKey(1))
	assert.Equal(t, 1, lockMapSize())
	unlock()
	assert.Equal(t, 0, lockMapSize())

	for i := int64(0); i < 100; i++ {
		lockCollection(formKey(i))()
	}
	assert.Equal(t, 0, lockMapSize())
}

func TestLockCollectionSerializesSameKey(t *testing.T) {
	const writers = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lockCollection(sectionKey(7))
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, counter)
	assert.Equal(t, 0, lockMapSize())
}
