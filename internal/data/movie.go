package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/metrics"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	movieCacheTTL  = 15 * time.Minute
	rankingZSetKey = "rank:movies:top"
)

func movieCacheKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

type movieRepo struct {
	data    *Data
	metrics *metrics.Metrics
	log     *log.Helper
}

// NewMovieRepo creates a new movie repository
func NewMovieRepo(data *Data, m *metrics.Metrics, logger log.Logger) biz.MovieRepo {
	return &movieRepo{
		data:    data,
		metrics: m,
		log:     log.NewHelper(logger),
	}
}

func (r *movieRepo) CreateMovie(ctx context.Context, movie *biz.Movie) error {
	dbMovie := r.bizToModel(movie)
	dbMovie.ID = 0

	if err := r.data.db.WithContext(ctx).Create(dbMovie).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("movie %q: %w", movie.Title, biz.ErrDuplicateTitle)
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	movie.ID = dbMovie.ID
	movie.CreatedAt = dbMovie.CreatedAt
	movie.UpdatedAt = dbMovie.UpdatedAt
	return nil
}

func (r *movieRepo) GetMovie(ctx context.Context, id int64) (*biz.Movie, error) {
	// Try cache first if Redis is available
	if r.data.rdb != nil {
		cached, err := r.data.rdb.Get(ctx, movieCacheKey(id)).Result()
		if err == nil {
			var movie biz.Movie
			if err := json.Unmarshal([]byte(cached), &movie); err == nil {
				r.log.Debugf("cache hit for movie: %d", id)
				return &movie, nil
			}
		}
	}

	var dbMovie Movie
	if err := r.data.db.WithContext(ctx).First(&dbMovie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, biz.ErrMovieNotFound)
		}
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}

	movie := r.modelToBiz(&dbMovie)

	// Cache result if Redis is available
	if r.data.rdb != nil {
		if data, err := json.Marshal(movie); err == nil {
			r.data.rdb.Set(ctx, movieCacheKey(id), data, movieCacheTTL)
		}
	}

	return movie, nil
}

// ListMovies returns every movie ordered by ascending rating. Movies without
// a rating come first; ties are broken by id.
func (r *movieRepo) ListMovies(ctx context.Context) ([]*biz.Movie, error) {
	var dbMovies []Movie
	err := r.data.db.WithContext(ctx).
		Order("rating IS NOT NULL").
		Order("rating").
		Order("id").
		Find(&dbMovies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	movies := make([]*biz.Movie, 0, len(dbMovies))
	for i := range dbMovies {
		movies = append(movies, r.modelToBiz(&dbMovies[i]))
	}
	return movies, nil
}

// UpdateMovie overwrites every mutable column, including ones set to NULL.
func (r *movieRepo) UpdateMovie(ctx context.Context, movie *biz.Movie) error {
	dbMovie := r.bizToModel(movie)

	result := r.data.db.WithContext(ctx).
		Model(dbMovie).
		Select("title", "year", "description", "rating", "ranking", "review", "img_url", "updated_at").
		Updates(dbMovie)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("movie %q: %w", movie.Title, biz.ErrDuplicateTitle)
		}
		return fmt.Errorf("failed to save movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, biz.ErrMovieNotFound)
	}

	movie.UpdatedAt = dbMovie.UpdatedAt
	r.invalidate(ctx, movie.ID)
	return nil
}

func (r *movieRepo) DeleteMovie(ctx context.Context, id int64) error {
	result := r.data.db.WithContext(ctx).Delete(&Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("movie %d: %w", id, biz.ErrMovieNotFound)
	}

	r.invalidate(ctx, id)
	if r.data.rdb != nil {
		r.data.rdb.ZRem(ctx, rankingZSetKey, strconv.FormatInt(id, 10))
	}
	return nil
}

// SaveRankings writes the ranking column of every given movie in one
// transaction. updated_at is left alone: ranking is derived, not edited.
func (r *movieRepo) SaveRankings(ctx context.Context, rankings map[int64]int) error {
	ids := make([]int64, 0, len(rankings))
	for id := range rankings {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	err := r.data.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			if err := tx.Model(&Movie{}).Where("id = ?", id).UpdateColumn("ranking", rankings[id]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write rankings: %w", err)
	}

	r.metrics.RankingsWritten(len(ids))
	r.updateRankings(ctx, ids, rankings)
	return nil
}

// updateRankings mirrors the rankings into a Redis ZSet and drops cached records
func (r *movieRepo) updateRankings(ctx context.Context, ids []int64, rankings map[int64]int) {
	if r.data.rdb == nil || len(ids) == 0 {
		return
	}

	members := make([]redis.Z, 0, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		members = append(members, redis.Z{
			Score:  float64(rankings[id]),
			Member: strconv.FormatInt(id, 10),
		})
		keys = append(keys, movieCacheKey(id))
	}

	if err := r.data.rdb.ZAdd(ctx, rankingZSetKey, members...).Err(); err != nil {
		r.log.Warnf("failed to update ranking zset: %v", err)
	}
	if err := r.data.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Warnf("failed to invalidate movie cache: %v", err)
	}
}

func (r *movieRepo) invalidate(ctx context.Context, id int64) {
	if r.data.rdb == nil {
		return
	}
	if err := r.data.rdb.Del(ctx, movieCacheKey(id)).Err(); err != nil {
		r.log.Warnf("failed to invalidate movie cache: %v", err)
	}
}

// Helper: Convert biz.Movie to data.Movie
func (r *movieRepo) bizToModel(m *biz.Movie) *Movie {
	return &Movie{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Rating:      m.Rating,
		Ranking:     m.Ranking,
		Review:      m.Review,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Helper: Convert data.Movie to biz.Movie
func (r *movieRepo) modelToBiz(m *Movie) *biz.Movie {
	return &biz.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Rating:      m.Rating,
		Ranking:     m.Ranking,
		Review:      m.Review,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
