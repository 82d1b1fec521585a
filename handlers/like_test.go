package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLikeUpdateOnPost(t *testing.T) {
	uid := primitive.NewObjectID()

	update := likeUpdate("", uid)
	assert.Equal(t, bson.M{"likedBy": uid}, update["$addToSet"])
	assert.Equal(t, bson.M{"likes": 1}, update["$inc"])
}

func TestUnlikeUpdateOnPost(t *testing.T) {
	uid := primitive.NewObjectID()

	update := unlikeUpdate("", uid)
	assert.Equal(t, bson.M{"likedBy": uid}, update["$pull"])
	assert.Equal(t, bson.M{"likes": -1}, update["$inc"])
}

func TestLikeUpdatePathsForComment(t *testing.T) {
	uid := primitive.NewObjectID()

	update := likeUpdate("comments.$[c].", uid)
	assert.Equal(t, bson.M{"comments.$[c].likedBy": uid}, update["$addToSet"])
	assert.Equal(t, bson.M{"comments.$[c].likes": 1}, update["$inc"])
}

func TestLikeUpdatePathsForReply(t *testing.T) {
	uid := primitive.NewObjectID()

	update := unlikeUpdate("comments.$[c].replies.$[r].", uid)
	assert.Equal(t, bson.M{"comments.$[c].replies.$[r].likedBy": uid}, update["$pull"])
	assert.Equal(t, bson.M{"comments.$[c].replies.$[r].likes": -1}, update["$inc"])
}

// A like followed by an unlike must cancel out on both the counter and the
// liker set within the update documents themselves.
func TestToggleUpdatesAreInverse(t *testing.T) {
	uid := primitive.NewObjectID()

	like := likeUpdate("", uid)
	unlike := unlikeUpdate("", uid)

	likeInc := like["$inc"].(bson.M)["likes"].(int)
	unlikeInc := unlike["$inc"].(bson.M)["likes"].(int)
	assert.Equal(t, 0, likeInc+unlikeInc)

	assert.Equal(t, like["$addToSet"].(bson.M)["likedBy"], unlike["$pull"].(bson.M)["likedBy"])
}
