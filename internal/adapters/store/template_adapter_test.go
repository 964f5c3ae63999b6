package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

func TestTemplateAdapterSeedsDefaultOnFirstRead(t *testing.T) {
	ctx := context.Background()
	kvStore := kv.NewMemoryAdapter()
	repo := NewTemplateAdapter(kvStore)

	template, err := repo.Get(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultWorkingHours, template.Day(entities.Saturday).Hours)
	assert.True(t, template.Day(entities.Friday).IsHoliday)

	// The default is persisted, not just returned
	exists, err := kvStore.Exists(ctx, providers.WeeklyTemplateKey("lawyer-1"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTemplateAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateAdapter(kv.NewMemoryAdapter())

	template := entities.DefaultWeeklyTemplate("lawyer-1")
	template.Days[entities.Monday] = entities.DayTemplate{Hours: []int{8, 18}}
	template.Days[entities.Tuesday] = entities.DayTemplate{IsHoliday: true}
	require.NoError(t, repo.Save(ctx, template))

	loaded, err := repo.Get(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 18}, loaded.Day(entities.Monday).Hours)
	assert.True(t, loaded.Day(entities.Tuesday).IsHoliday)
	assert.False(t, loaded.Day(entities.Wednesday).IsHoliday)
}

func TestTemplateAdapterRequiresLawyerID(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateAdapter(kv.NewMemoryAdapter())

	_, err := repo.Get(ctx, "")
	assert.Error(t, err)

	err = repo.Save(ctx, &entities.WeeklyTemplate{})
	assert.Error(t, err)
}
