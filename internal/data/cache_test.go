package data

import (
	"context"
	"strconv"
	"testing"

	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/conf"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedMovieRepo(t *testing.T) (biz.MovieRepo, *Data, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	d, cleanup, err := NewData(&conf.Data{
		Database: &conf.Database{Driver: "sqlite", Source: ":memory:"},
		Redis:    &conf.Redis{Addr: mr.Addr()},
	}, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NotNil(t, d.rdb, "redis client is connected")

	return NewMovieRepo(d, nil, log.DefaultLogger), d, mr
}

func memberOf(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestMovieRepo_GetMovieUsesCache(t *testing.T) {
	repo, d, mr := setupCachedMovieRepo(t)
	ctx := context.Background()
	m := createMovie(t, repo, "Heat", ptr(8.3))

	_, err := repo.GetMovie(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(movieCacheKey(m.ID)))
	assert.Equal(t, movieCacheTTL, mr.TTL(movieCacheKey(m.ID)))

	// Changed behind the repo's back: the cached record is still served.
	require.NoError(t, d.db.Model(&Movie{}).Where("id = ?", m.ID).UpdateColumn("title", "Changed").Error)

	got, err := repo.GetMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8.3, *got.Rating)
}

func TestMovieRepo_UpdateInvalidatesCache(t *testing.T) {
	repo, _, mr := setupCachedMovieRepo(t)
	ctx := context.Background()
	m := createMovie(t, repo, "Heat", nil)

	cached, err := repo.GetMovie(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(movieCacheKey(m.ID)))

	cached.Title = "Heat (1995)"
	cached.Rating = ptr(8.3)
	require.NoError(t, repo.UpdateMovie(ctx, cached))
	assert.False(t, mr.Exists(movieCacheKey(m.ID)))

	got, err := repo.GetMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat (1995)", got.Title)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8.3, *got.Rating)
}

func TestMovieRepo_ListWritesRankingZSet(t *testing.T) {
	repo, _, mr := setupCachedMovieRepo(t)
	ctx := context.Background()
	uc := biz.NewMovieUseCase(repo, log.DefaultLogger)

	a := createMovie(t, repo, "A", ptr(9.0))
	b := createMovie(t, repo, "B", ptr(7.5))
	c := createMovie(t, repo, "C", ptr(8.2))
	for _, m := range []*biz.Movie{a, b, c} {
		_, err := repo.GetMovie(ctx, m.ID)
		require.NoError(t, err)
	}

	_, err := uc.ListMovies(ctx)
	require.NoError(t, err)

	members, err := mr.ZMembers(rankingZSetKey)
	require.NoError(t, err)
	assert.Equal(t, []string{memberOf(b.ID), memberOf(c.ID), memberOf(a.ID)}, members, "ordered by ranking")

	for id, want := range map[int64]float64{a.ID: 3, c.ID: 2, b.ID: 1} {
		score, err := mr.ZScore(rankingZSetKey, memberOf(id))
		require.NoError(t, err)
		assert.Equal(t, want, score)
		assert.False(t, mr.Exists(movieCacheKey(id)), "cached record of movie %d dropped", id)
	}

	got, err := repo.GetMovie(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Ranking)
	assert.Equal(t, 3, *got.Ranking)
}

func TestMovieRepo_DeleteInvalidatesCacheAndRanking(t *testing.T) {
	repo, _, mr := setupCachedMovieRepo(t)
	ctx := context.Background()

	a := createMovie(t, repo, "A", ptr(9.0))
	b := createMovie(t, repo, "B", ptr(7.5))
	require.NoError(t, repo.SaveRankings(ctx, map[int64]int{a.ID: 2, b.ID: 1}))

	_, err := repo.GetMovie(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(movieCacheKey(a.ID)))

	require.NoError(t, repo.DeleteMovie(ctx, a.ID))

	assert.False(t, mr.Exists(movieCacheKey(a.ID)))
	members, err := mr.ZMembers(rankingZSetKey)
	require.NoError(t, err)
	assert.Equal(t, []string{memberOf(b.ID)}, members)

	_, err = repo.GetMovie(ctx, a.ID)
	require.ErrorIs(t, err, biz.ErrMovieNotFound)
}
