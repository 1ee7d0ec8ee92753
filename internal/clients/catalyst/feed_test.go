package catalyst

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/scout/internal/models"
)

func TestGetCatalystDeterministic(t *testing.T) {
	feed := NewStaticFeed()

	first, err := feed.GetCatalyst(context.Background(), "AAPL")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := feed.GetCatalyst(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGetCatalystMemberOfTagSet(t *testing.T) {
	feed := NewStaticFeed()

	for i := 0; i < 50; i++ {
		tag, err := feed.GetCatalyst(context.Background(), fmt.Sprintf("SYM%02d", i))
		require.NoError(t, err)
		assert.Contains(t, models.Catalysts, tag)
	}
}

func TestGetCatalystSpreadsAcrossTags(t *testing.T) {
	feed := NewStaticFeed()

	seen := make(map[models.Catalyst]bool)
	for i := 0; i < 200; i++ {
		tag, err := feed.GetCatalyst(context.Background(), fmt.Sprintf("T%03d", i))
		require.NoError(t, err)
		seen[tag] = true
	}
	assert.Greater(t, len(seen), 1, "distinct symbols should not collapse onto one tag")
}
