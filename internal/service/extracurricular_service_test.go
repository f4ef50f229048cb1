package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

func newExtracurricularService(f *serviceFixture) *ExtracurricularService {
	return NewExtracurricularService(ExtracurricularServiceParams{
		Entries:  f.extracurriculars,
		Targets:  f.profiles,
		Profiles: f.profileService,
		Cache:    f.cache,
	})
}

func TestExtracurricularServiceCRUD(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newExtracurricularService(f)
	ctx := context.Background()

	entry, err := svc.Create(ctx, "u1", ExtracurricularRequest{
		Category:     models.CategoryResearch,
		Organization: " Lab ",
		StartDate:    "2023-01-01",
		Hours:        120,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lab", entry.Organization)

	updated, err := svc.Update(ctx, "u1", entry.ID, ExtracurricularRequest{
		Category:     models.CategoryClinical,
		Organization: "Clinic",
		Hours:        30,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryClinical, updated.Category)
	assert.Equal(t, 30.0, updated.Hours)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Clinic", list[0].Organization)

	require.NoError(t, svc.Delete(ctx, "u1", entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", entry.ID), appErrors.ErrNotFound)
	_, err = svc.Get(ctx, "u1", entry.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Len(t, f.cacheRepo.deleted, 3)
}

func TestExtracurricularServiceValidation(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newExtracurricularService(f)

	cases := map[string]ExtracurricularRequest{
		"unknown category": {Category: "sports", Organization: "Club"},
		"no organization":  {Category: models.CategoryCommunity},
		"negative hours":   {Category: models.CategoryCommunity, Organization: "Shelter", Hours: -1},
		"end before start": {Category: models.CategoryCommunity, Organization: "Shelter", StartDate: "2024-02-01", EndDate: "2024-01-01"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestExtracurricularServiceTargetsMergeOverDefaults(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newExtracurricularService(f)
	ctx := context.Background()

	targets, err := svc.Targets(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategoryTargets(100), targets)

	merged, err := svc.UpdateTargets(ctx, "u1", models.CategoryTargets{models.CategoryClinical: 250})
	require.NoError(t, err)
	assert.Equal(t, 250.0, merged[models.CategoryClinical])
	assert.Equal(t, 100.0, merged[models.CategoryResearch])
	assert.Equal(t, merged, f.profiles.profiles["u1"].CategoryTargets)

	_, err = svc.UpdateTargets(ctx, "u1", models.CategoryTargets{"sports": 10})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.UpdateTargets(ctx, "u1", models.CategoryTargets{models.CategoryResearch: -5})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
