package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tourly/database"
	"tourly/models"
)

// Like toggling is two conditional updates: add-if-absent, else
// remove-if-present. The liker set and the counter move in one atomic update
// document, so likes == len(likedBy) holds even under concurrent toggles.

// likeUpdate builds the add-to-set + increment document for the element at
// prefix ("" for the post itself, "comments.$[c]." for a comment, ...).
func likeUpdate(prefix string, userID primitive.ObjectID) bson.M {
	return bson.M{
		"$addToSet": bson.M{prefix + "likedBy": userID},
		"$inc":      bson.M{prefix + "likes": 1},
	}
}

func unlikeUpdate(prefix string, userID primitive.ObjectID) bson.M {
	return bson.M{
		"$pull": bson.M{prefix + "likedBy": userID},
		"$inc":  bson.M{prefix + "likes": -1},
	}
}

func arrayFilters(filters ...bson.M) *options.UpdateOptions {
	elems := make([]interface{}, len(filters))
	for i, f := range filters {
		elems[i] = f
	}
	return options.Update().SetArrayFilters(options.ArrayFilters{Filters: elems})
}

// LikeThePost toggles the caller's like on a post, a comment, or a reply,
// depending on which path parameters are present.
func LikeThePost(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var liked bool
	var err error

	switch {
	case c.Param("replyId") != "":
		commentID, ok := objectIDParam(c, "commentId")
		if !ok {
			return
		}
		replyID, ok := objectIDParam(c, "replyId")
		if !ok {
			return
		}
		liked, err = toggleReplyLike(ctx, postID, commentID, replyID, userID)
	case c.Param("commentId") != "":
		commentID, ok := objectIDParam(c, "commentId")
		if !ok {
			return
		}
		liked, err = toggleCommentLike(ctx, postID, commentID, userID)
	default:
		liked, err = togglePostLike(ctx, postID, userID)
	}

	if err == errLikeTargetMissing {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post or comment not found"})
		return
	}
	if err != nil {
		writeStorageError(c, err, "")
		return
	}

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		writeStorageError(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"post":  post,
	})
}

var errLikeTargetMissing = errTarget{}

type errTarget struct{}

func (errTarget) Error() string { return "like target not found" }

func togglePostLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	res, err := database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": bson.M{"$ne": userID}},
		likeUpdate("", userID),
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	res, err = database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": userID},
		unlikeUpdate("", userID),
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return false, nil
	}
	return false, errLikeTargetMissing
}

func toggleCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (bool, error) {
	res, err := database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		likeUpdate("comments.$[c].", userID),
		arrayFilters(bson.M{"c._id": commentID, "c.likedBy": bson.M{"$ne": userID}}),
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	res, err = database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		unlikeUpdate("comments.$[c].", userID),
		arrayFilters(bson.M{"c._id": commentID, "c.likedBy": userID}),
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return false, nil
	}
	return false, errLikeTargetMissing
}

func toggleReplyLike(ctx context.Context, postID, commentID, replyID, userID primitive.ObjectID) (bool, error) {
	res, err := database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		likeUpdate("comments.$[c].replies.$[r].", userID),
		arrayFilters(
			bson.M{"c._id": commentID},
			bson.M{"r._id": replyID, "r.likedBy": bson.M{"$ne": userID}},
		),
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	res, err = database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		unlikeUpdate("comments.$[c].replies.$[r].", userID),
		arrayFilters(
			bson.M{"c._id": commentID},
			bson.M{"r._id": replyID, "r.likedBy": userID},
		),
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return false, nil
	}
	return false, errLikeTargetMissing
}
