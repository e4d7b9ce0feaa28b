package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

const defaultTreeFanout = 8

// CommentService creates comments and assembles reply trees.
type CommentService struct {
	db *gorm.DB
	// fanout bounds the number of concurrent child queries per tree level.
	fanout int
}

func NewCommentService(db *gorm.DB, fanout int) *CommentService {
	if fanout <= 0 {
		fanout = defaultTreeFanout
	}
	return &CommentService{db: db, fanout: fanout}
}

// CreateCommentInput carries a new comment. A nil or empty ParentID makes it
// a top-level comment.
type CreateCommentInput struct {
	Content  string
	ParentID *string
}

var ErrCommentEmpty = utils.Validation(40031, "content is required", map[string]string{
	"content": "is required",
})

// Create stores a comment by userID on postID, optionally replying to another
// comment of the same post.
func (s *CommentService) Create(ctx context.Context, userID, postID string, in CreateCommentInput) (*CommentView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrCommentEmpty
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	var parentID *string
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) != "" {
		pid := strings.TrimSpace(*in.ParentID)
		var parent models.Comment
		err := s.db.WithContext(ctx).Select("id", "post_id").First(&parent, "id = ?", pid).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		if err != nil {
			return nil, utils.Internal(50040, "failed to load parent comment", err)
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
		parentID = &pid
	}

	comment := models.Comment{
		Content:  in.Content,
		AuthorID: userID,
		PostID:   postID,
		ParentID: parentID,
	}
	db := s.db.WithContext(ctx)
	if err := db.Create(&comment).Error; err != nil {
		return nil, utils.Internal(50041, "failed to create comment", err)
	}
	if err := db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, utils.Internal(50042, "failed to load comment", err)
	}
	view := toCommentView(comment, true)
	return &view, nil
}

// ListByPost returns the top-level comments of postID, newest first, each
// with its complete reply subtree. Every level is ordered newest first.
//
// The tree is built level by level: the children of every node in the
// current frontier are fetched concurrently, then those children become the
// next frontier. Depth is unbounded and no recursion is involved.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*CommentNode, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	var roots []models.Comment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Find(&roots).Error; err != nil {
		return nil, utils.Internal(50043, "failed to load comments", err)
	}

	top := toNodes(roots)
	frontier := top
	for len(frontier) > 0 {
		children, err := s.fetchChildren(ctx, frontier)
		if err != nil {
			return nil, err
		}
		if err := s.fillVotes(ctx, frontier); err != nil {
			return nil, err
		}

		var next []*CommentNode
		for i, node := range frontier {
			node.Replies = toNodes(children[i])
			node.Count.Replies = int64(len(node.Replies))
			next = append(next, node.Replies...)
		}
		frontier = next
	}
	return top, nil
}

// fetchChildren loads the direct replies of every frontier node. Result i
// belongs to frontier[i].
func (s *CommentService) fetchChildren(ctx context.Context, frontier []*CommentNode) ([][]models.Comment, error) {
	children := make([][]models.Comment, len(frontier))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, node := range frontier {
		i, parentID := i, node.ID
		g.Go(func() error {
			var kids []models.Comment
			if err := s.db.WithContext(gctx).
				Preload("Author").
				Where("parent_id = ?", parentID).
				Order("created_at DESC").
				Find(&kids).Error; err != nil {
				return err
			}
			children[i] = kids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, utils.Internal(50044, "failed to load replies", err)
	}
	return children, nil
}

func (s *CommentService) fillVotes(ctx context.Context, nodes []*CommentNode) error {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	votes, err := countBy(ctx, s.db, &models.Vote{}, "comment_id", ids)
	if err != nil {
		return utils.Internal(50045, "failed to count votes", err)
	}
	for _, n := range nodes {
		n.Count.Votes = votes[n.ID]
	}
	return nil
}

func (s *CommentService) ensurePost(ctx context.Context, postID string) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
		return utils.Internal(50046, "failed to load post", err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func toNodes(comments []models.Comment) []*CommentNode {
	nodes := make([]*CommentNode, len(comments))
	for i, c := range comments {
		nodes[i] = &CommentNode{CommentView: toCommentView(c, false), Replies: []*CommentNode{}}
	}
	return nodes
}
