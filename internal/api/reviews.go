package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Comment moderation states.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// Comment mirrors the review serializer.
type Comment struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// RatingInput submits a 1-5 score for a product.
type RatingInput struct {
	Score int64 `json:"score"`
}

// FetchComments lists the approved comments for a product.
func (c *Client) FetchComments(ctx context.Context, productID int64) ([]Comment, error) {
	if productID <= 0 {
		return nil, &Error{Message: "invalid product id"}
	}
	return c.fetchCommentList(ctx, c.endpoint("products", strconv.FormatInt(productID, 10), "comments"), "Failed to load comments")
}

// CreateComment posts a new comment; it enters the moderation queue as
// pending and will not appear in FetchComments until approved.
func (c *Client) CreateComment(ctx context.Context, productID int64, body string) (Comment, error) {
	if productID <= 0 {
		return Comment{}, &Error{Message: "invalid product id"}
	}
	payload := map[string]string{"body": body}
	var comment Comment
	if err := c.do(ctx, http.MethodPost, c.endpoint("products", strconv.FormatInt(productID, 10), "comments"), payload, &comment, "Failed to submit comment"); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// RateProduct submits a rating score for a product.
func (c *Client) RateProduct(ctx context.Context, productID int64, score int64) error {
	if productID <= 0 {
		return &Error{Message: "invalid product id"}
	}
	return c.do(ctx, http.MethodPost, c.endpoint("products", strconv.FormatInt(productID, 10), "ratings"), RatingInput{Score: score}, nil, "Failed to submit rating")
}

// FetchPendingComments lists comments awaiting moderation. Admin console
// only; the server enforces staff permission.
func (c *Client) FetchPendingComments(ctx context.Context) ([]Comment, error) {
	return c.fetchCommentList(ctx, c.endpoint("comments", "pending"), "Failed to load pending comments")
}

// SetCommentStatus approves or rejects a comment. Admin console only.
func (c *Client) SetCommentStatus(ctx context.Context, commentID int64, status string) error {
	if commentID <= 0 {
		return &Error{Message: "invalid comment id"}
	}
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, c.endpoint("comments", strconv.FormatInt(commentID, 10), "status"), body, nil, "Failed to update comment status")
}

func (c *Client) fetchCommentList(ctx context.Context, u *url.URL, fallback string) ([]Comment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, u, nil, &raw, fallback); err != nil {
		return nil, err
	}
	rows := normalizeList(raw, "results", "comments")
	comments := make([]Comment, 0, len(rows))
	for _, row := range rows {
		var comment Comment
		if err := json.Unmarshal(row, &comment); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decode comment: %v", err)}
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
