package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tourly/database"
	"tourly/models"
)

// CommentRequest accepts both field names the clients historically sent.
type CommentRequest struct {
	Body    string `json:"body"`
	Comment string `json:"comment"`
	Reply   string `json:"reply"`
	NewBody string `json:"newComment"`
}

func (r CommentRequest) text() string {
	for _, s := range []string{r.Body, r.Comment, r.Reply, r.NewBody} {
		if s != "" {
			return s
		}
	}
	return ""
}

func bindCommentBody(c *gin.Context) (string, bool) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	body := req.text()
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return "", false
	}
	return body, true
}

// postExists distinguishes a missing post from a missing embedded comment.
func postExists(ctx context.Context, postID primitive.ObjectID) (bool, error) {
	count, err := database.Posts.CountDocuments(ctx, bson.M{"_id": postID})
	return count > 0, err
}

// PostComment appends a comment to the post's embedded sequence.
func PostComment(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}

	body, ok := bindCommentBody(c)
	if !ok {
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Body:      body,
		LikedBy:   []primitive.ObjectID{},
		Replies:   []models.Reply{},
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": time.Now().Unix()},
		},
		mongoAfter(),
	).Decode(&post)
	if err != nil {
		writeStorageError(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
		"post":    post,
	})
}

// ReplyToComment appends a reply to one comment inside the post document.
func ReplyToComment(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}

	body, ok := bindCommentBody(c)
	if !ok {
		return
	}

	reply := models.Reply{
		ID:        primitive.NewObjectID(),
		Body:      body,
		LikedBy:   []primitive.ObjectID{},
		CreatedAt: time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$push": bson.M{"comments.$.replies": reply}},
		mongoAfter(),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		exists, exErr := postExists(ctx, postID)
		if exErr != nil {
			writeStorageError(c, exErr, "")
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if err != nil {
		writeStorageError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply added successfully",
		"reply":   reply,
		"post":    post,
	})
}

// EditComment replaces the comment body in place.
func EditComment(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}

	body, ok := bindCommentBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$set": bson.M{
			"comments.$.body":      body,
			"comments.$.updatedAt": time.Now().Unix(),
		}},
		mongoAfter(),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		exists, exErr := postExists(ctx, postID)
		if exErr != nil {
			writeStorageError(c, exErr, "")
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if err != nil {
		writeStorageError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeleteComment splices the comment (and its replies) out of the sequence.
func DeleteComment(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "commentId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
		mongoAfter(),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		exists, exErr := postExists(ctx, postID)
		if exErr != nil {
			writeStorageError(c, exErr, "")
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if err != nil {
		writeStorageError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
		"post":    post,
	})
}
