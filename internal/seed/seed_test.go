package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusnet/internal/app/repositories/memory"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateDemoDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := services.NewServices(services.Dependencies{
		Repos:       repos,
		Revocations: auth.NewMemoryRevocationList(),
		Logger:      zerolog.Nop(),
		BcryptCost:  bcrypt.MinCost,
	})

	require.NoError(t, CreateDemoData(ctx, svc, zerolog.Nop()))
	require.NoError(t, CreateDemoData(ctx, svc, zerolog.Nop()))

	profiles, err := svc.Profiles.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, len(demoUsers))
	assert.Equal(t, "grace_alumni", profiles[1].Username)
	assert.Len(t, profiles[1].Educations, 2)
	assert.Len(t, profiles[1].Certificates, 1)
	assert.Nil(t, profiles[1].Resume)

	feed, err := svc.Posts.Feed(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}
