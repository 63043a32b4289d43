package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visibi/brand-monitor/internal/models"
)

func analysis(brand string) models.AnalysisResponse {
	return models.AnalysisResponse{
		BrandName: brand,
		Analysis:  []models.QueryAnalysis{{Query: "What do you think about " + brand + "?"}},
	}
}

func TestMemoryStore_RecentOrder(t *testing.T) {
	store := NewMemoryStore()
	for _, brand := range []string{"Slack", "Notion", "Linear"} {
		store.Append(analysis(brand))
	}

	recent := store.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "Linear", recent[0].BrandName)
	assert.Equal(t, "Notion", recent[1].BrandName)

	assert.Len(t, store.Recent(10), 3)
	assert.Len(t, store.Recent(0), 3)
	assert.Equal(t, 3, store.Count())
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	store.Append(analysis("Slack"))
	store.Append(analysis("Notion"))

	assert.Equal(t, 2, store.Clear())
	assert.Equal(t, 0, store.Count())
	assert.Empty(t, store.Recent(10))
	assert.Equal(t, 0, store.Clear())
}

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	original := analysis("Slack")
	store.Append(original)

	original.Analysis[0].Query = "mutated"
	returned := store.Recent(1)
	assert.Equal(t, "What do you think about Slack?", returned[0].Analysis[0].Query)

	returned[0].Analysis[0].Query = "mutated again"
	assert.Equal(t, "What do you think about Slack?", store.Recent(1)[0].Analysis[0].Query)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Append(analysis(fmt.Sprintf("Brand%d", i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
}
