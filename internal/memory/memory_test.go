package memory_test

import (
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dara-analytics/dara/internal/memory"
)

func TestTracker(t *testing.T) {
	checked := arrowmem.NewCheckedAllocator(arrowmem.NewGoAllocator())
	defer checked.AssertSize(t, 0)

	tr := memory.NewTracker(checked)

	a := tr.Allocate(64)
	b := tr.Allocate(128)
	assert.Equal(t, int64(len(a)+len(b)), tr.Live())
	assert.Equal(t, int64(2), tr.Allocations())

	b = tr.Reallocate(256, b)
	assert.Equal(t, int64(len(a)+len(b)), tr.Live())
	peak := tr.Peak()

	tr.Free(a)
	tr.Free(b)
	assert.Zero(t, tr.Live())
	assert.Equal(t, peak, tr.Peak())
	assert.GreaterOrEqual(t, peak, int64(64+256))
}

func TestTrackerWithArrowBuilders(t *testing.T) {
	tr := memory.NewTracker(nil)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bld := array.NewInt64Builder(tr)
			defer bld.Release()
			for i := range 1000 {
				bld.Append(int64(i))
			}
			arr := bld.NewInt64Array()
			arr.Release()
		}()
	}
	wg.Wait()

	require.Positive(t, tr.Allocations())
	assert.Positive(t, tr.Peak())
	assert.Zero(t, tr.Live())
}

func TestForceGC(t *testing.T) {
	assert.NotPanics(t, memory.ForceGC)
}
