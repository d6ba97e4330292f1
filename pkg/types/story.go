package types

import "time"

// CommunityStory is authored by a member and stays out of the public feed
// until an admin sets IsPublished. IsPublished and IsFeatured are admin-only;
// the author owns title/content/excerpt and may delete at any time.
type CommunityStory struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	Excerpt     *string   `db:"excerpt"`
	IsPublished bool      `db:"is_published"`
	IsFeatured  bool      `db:"is_featured"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Preview returns the excerpt when present, otherwise the leading content.
func (s *CommunityStory) Preview() string {
	if s.Excerpt != nil && *s.Excerpt != "" {
		return *s.Excerpt
	}
	if len(s.Content) > 200 {
		return s.Content[:200] + "..."
	}
	return s.Content
}
