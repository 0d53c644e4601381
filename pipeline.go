package narrowphase

import (
	"sync"

	"go.uber.org/zap"
)

// task splits data in contiguous chunks, one per worker, and waits for all of
// them. fn must only write state owned by its item.
func task[T any](workersCount int, data []T, fn func(data T)) {
	dataSize := len(data)
	workersCount = min(workersCount, dataSize)
	if workersCount <= 1 {
		for _, d := range data {
			fn(d)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}

// NarrowPhase updates every contact and returns the number of touching pairs.
// Each contact only writes its own cache and result, so the outcome does not
// depend on the number of workers.
func (c *Collider) NarrowPhase(contacts []*Contact) int {
	task(c.workers, contacts, func(contact *Contact) {
		contact.Update(c)
	})

	touching := 0
	for _, contact := range contacts {
		if contact.Touching {
			touching++
		}
	}
	c.logger.Debug("narrow phase",
		zap.Int("pairs", len(contacts)),
		zap.Int("touching", touching))
	return touching
}

// NarrowPhaseGeometry updates every body-mesh contact and returns the total
// number of triangle contacts.
func (c *Collider) NarrowPhaseGeometry(contacts []*GeometryContact) int {
	task(c.workers, contacts, func(contact *GeometryContact) {
		contact.Update(c)
	})

	total := 0
	for _, contact := range contacts {
		total += contact.Contacts.Count
	}
	c.logger.Debug("narrow phase geometry",
		zap.Int("pairs", len(contacts)),
		zap.Int("contacts", total))
	return total
}
