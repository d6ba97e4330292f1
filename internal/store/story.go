package store

import (
	"context"
	"fmt"
	"time"

	"prismfund/internal/utils"
	"prismfund/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const storyTableName = "prismfund.community_stories"

var storyColumns = utils.StructTagValues(types.CommunityStory{})

type StoryRepository struct {
	pool *pgxpool.Pool
}

func NewStoryRepository(pool *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{pool: pool}
}

func (r *StoryRepository) Story(ctx context.Context, storyID string) (*types.CommunityStory, error) {
	query, args, err := psql().
		Select(storyColumns...).
		From(storyTableName).
		Where(sq.Eq{"id": storyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate story query: %w", err)
	}

	var story types.CommunityStory
	err = pgxscan.Get(ctx, r.pool, &story, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch story: %w", err)
	}

	return &story, nil
}

// PublishedStories is the public feed: approved stories only, featured first.
func (r *StoryRepository) PublishedStories(ctx context.Context) ([]*types.CommunityStory, error) {
	query, args, err := psql().
		Select(storyColumns...).
		From(storyTableName).
		Where(sq.Eq{"is_published": true}).
		OrderBy("is_featured desc", "created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate published stories query: %w", err)
	}

	var stories = make([]*types.CommunityStory, 0)
	err = pgxscan.Select(ctx, r.pool, &stories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published stories: %w", err)
	}

	return stories, nil
}

func (r *StoryRepository) StoriesByUser(ctx context.Context, userID string) ([]*types.CommunityStory, error) {
	query, args, err := psql().
		Select(storyColumns...).
		From(storyTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user stories query: %w", err)
	}

	var stories = make([]*types.CommunityStory, 0)
	err = pgxscan.Select(ctx, r.pool, &stories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user stories: %w", err)
	}

	return stories, nil
}

// AllStories feeds the admin moderation queue, unpublished included.
func (r *StoryRepository) AllStories(ctx context.Context) ([]*types.CommunityStory, error) {
	query, args, err := psql().
		Select(storyColumns...).
		From(storyTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate stories query: %w", err)
	}

	var stories = make([]*types.CommunityStory, 0)
	err = pgxscan.Select(ctx, r.pool, &stories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}

	return stories, nil
}

// CreateStory creates an unpublished story owned by its author. Publication
// is an admin decision recorded through SetPublished.
func (r *StoryRepository) CreateStory(ctx context.Context, story *types.CommunityStory) error {
	now := time.Now()
	story.ID = utils.NanoID()
	story.IsPublished = false
	story.IsFeatured = false
	story.CreatedAt = now
	story.UpdatedAt = now

	query, args, err := psql().
		Insert(storyTableName).
		SetMap(utils.StructToMap(story)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert story query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert story")
}

// UpdateContent lets the author edit title/content/excerpt. The moderation
// flags are deliberately untouched here.
func (r *StoryRepository) UpdateContent(ctx context.Context, storyID, userID string, title, content string, excerpt *string) error {

	query, args, err := psql().
		Update(storyTableName).
		Set("title", title).
		Set("content", content).
		Set("excerpt", excerpt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": storyID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update story query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrStoryNotFound
	}

	return nil
}

func (r *StoryRepository) SetPublished(ctx context.Context, storyID string, published bool) error {
	return r.setFlag(ctx, storyID, "is_published", published)
}

func (r *StoryRepository) SetFeatured(ctx context.Context, storyID string, featured bool) error {
	return r.setFlag(ctx, storyID, "is_featured", featured)
}

func (r *StoryRepository) setFlag(ctx context.Context, storyID, column string, value bool) error {
	query, args, err := psql().
		Update(storyTableName).
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": storyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate story flag query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update story flag: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrStoryNotFound
	}

	return nil
}

// DeleteStory removes a story. When ownerID is non-empty the delete is
// scoped to the author; admins pass an empty ownerID during moderation.
func (r *StoryRepository) DeleteStory(ctx context.Context, storyID, ownerID string) error {
	where := sq.Eq{"id": storyID}
	if ownerID != "" {
		where["user_id"] = ownerID
	}

	query, args, err := psql().
		Delete(storyTableName).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete story query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrStoryNotFound
	}

	return nil
}
