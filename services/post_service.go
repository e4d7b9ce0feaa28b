package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

// PostService implements post creation, listing, lookup and deletion.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePostInput carries a new post. At least one of Content or Link must be
// non-empty.
type CreatePostInput struct {
	Title   string
	Content *string
	Link    *string
}

var ErrPostEmpty = utils.Validation(40021, "content or link is required", map[string]string{
	"content": "is required when link is empty",
})

var ErrTitleEmpty = utils.Validation(40022, "title is required", map[string]string{
	"title": "is required",
})

// Create stores a post authored by userID.
func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*PostView, error) {
	post := models.Post{
		Title:    in.Title,
		Content:  nonBlank(in.Content),
		Link:     trimmed(in.Link),
		AuthorID: userID,
	}
	if strings.TrimSpace(post.Title) == "" {
		return nil, ErrTitleEmpty
	}
	if post.Content == nil && post.Link == nil {
		return nil, ErrPostEmpty
	}

	db := s.db.WithContext(ctx)
	if err := db.Create(&post).Error; err != nil {
		return nil, utils.Internal(50020, "failed to create post", err)
	}
	if err := db.Preload("Author").First(&post, "id = ?", post.ID).Error; err != nil {
		return nil, utils.Internal(50021, "failed to load post", err)
	}
	view := toPostView(post, true)
	return &view, nil
}

// ListAll returns every post, newest first, with author and counts.
func (s *PostService) ListAll(ctx context.Context) ([]PostView, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, utils.Internal(50022, "failed to list posts", err)
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.postCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = toPostView(p, false)
		out[i].Count = counts[p.ID]
	}
	return out, nil
}

// GetOne returns a post with its comments as a flat list, newest first.
func (s *PostService) GetOne(ctx context.Context, id string) (*PostDetail, error) {
	db := s.db.WithContext(ctx)

	var post models.Post
	err := db.Preload("Author").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, utils.Internal(50023, "failed to load post", err)
	}

	var comments []models.Comment
	if err := db.Preload("Author").
		Where("post_id = ?", id).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, utils.Internal(50024, "failed to load comments", err)
	}

	counts, err := s.postCounts(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	commentIDs := make([]string, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}
	ccounts, err := commentCounts(ctx, s.db, commentIDs)
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{
		PostView: toPostView(post, false),
		Comments: make([]CommentView, len(comments)),
	}
	detail.Count = counts[id]
	for i, c := range comments {
		detail.Comments[i] = toCommentView(c, false)
		detail.Comments[i].Count = ccounts[c.ID]
	}
	return detail, nil
}

// Delete removes a post owned by userID together with its comments and all
// votes attached to either, in one transaction.
func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	var post models.Post
	err := s.db.WithContext(ctx).Select("id", "author_id").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return utils.Internal(50025, "failed to load post", err)
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
	if err != nil {
		return utils.Internal(50026, "failed to delete post", err)
	}
	return nil
}

func (s *PostService) postCounts(ctx context.Context, ids []string) (map[string]PostCounts, error) {
	votes, err := countBy(ctx, s.db, &models.Vote{}, "post_id", ids)
	if err != nil {
		return nil, utils.Internal(50027, "failed to count votes", err)
	}
	comments, err := countBy(ctx, s.db, &models.Comment{}, "post_id", ids)
	if err != nil {
		return nil, utils.Internal(50028, "failed to count comments", err)
	}
	out := make(map[string]PostCounts, len(ids))
	for _, id := range ids {
		out[id] = PostCounts{Votes: votes[id], Comments: comments[id]}
	}
	return out, nil
}

func commentCounts(ctx context.Context, db *gorm.DB, ids []string) (map[string]CommentCounts, error) {
	votes, err := countBy(ctx, db, &models.Vote{}, "comment_id", ids)
	if err != nil {
		return nil, utils.Internal(50029, "failed to count votes", err)
	}
	replies, err := countBy(ctx, db, &models.Comment{}, "parent_id", ids)
	if err != nil {
		return nil, utils.Internal(50030, "failed to count replies", err)
	}
	out := make(map[string]CommentCounts, len(ids))
	for _, id := range ids {
		out[id] = CommentCounts{Votes: votes[id], Replies: replies[id]}
	}
	return out, nil
}

// nonBlank keeps a body as submitted and maps blank bodies to nil.
func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
