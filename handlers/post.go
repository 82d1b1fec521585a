package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tourly/database"
	"tourly/models"
)

// postWithAuthor is the $lookup projection used by every listing.
type postWithAuthor struct {
	models.Post `bson:",inline"`
	AuthorDoc   *models.User `bson:"authorDoc"`
}

func postResponse(p postWithAuthor) gin.H {
	authorName := "Unknown"
	if p.AuthorDoc != nil && p.AuthorDoc.Name != "" {
		authorName = p.AuthorDoc.Name
	}

	return gin.H{
		"post":       p.Post,
		"authorName": authorName,
	}
}

// findPosts runs the shared listing pipeline: filter, sort, page window and
// author join.
func findPosts(ctx context.Context, match, sort bson.D, skip, limit int64) ([]postWithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sort}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)

	cursor, err := database.Posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []postWithAuthor
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func listPosts(c *gin.Context, match, sort bson.D, skip, limit int64) ([]postWithAuthor, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := findPosts(ctx, match, sort, skip, limit)
	if err != nil {
		log.Printf("post listing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return nil, false
	}
	return posts, true
}

type CreatePostRequest struct {
	Title       string  `form:"title" binding:"required"`
	Content     string  `form:"content" binding:"required"`
	Price       float64 `form:"price" binding:"required"`
	Destination string  `form:"destination" binding:"required"`
	PostDate    string  `form:"postDate" binding:"required"`
	Currency    string  `form:"currency"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func CreatePost(c *gin.Context) {
	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidDestination(req.Destination) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Invalid destination",
			"destinations": models.Destinations,
		})
		return
	}

	postDate, err := parseDate(req.PostDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid postDate, use YYYY-MM-DD"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["photos"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please upload at least one photo"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var images []models.Image
	for _, file := range form.File["photos"] {
		img, err := uploadImage(ctx, file, "tourly/posts")
		if err != nil {
			log.Printf("CreatePost upload error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
			return
		}
		images = append(images, img)
	}

	post := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Content:     req.Content,
		Author:      userID,
		PostImage:   images,
		Destination: req.Destination,
		Currency:    req.Currency,
		Comments:    []models.Comment{},
		LikedBy:     []primitive.ObjectID{},
		Price:       req.Price,
		PostDate:    postDate,
		Trips:       []models.Trip{},
		CreatedAt:   time.Now().Unix(),
		UpdatedAt:   time.Now().Unix(),
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		writeStorageError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetPosts serves the listing projections. The sort/destination query
// parameters select the projection so the read paths share one route.
func GetPosts(c *gin.Context) {
	switch c.Query("sort") {
	case "most-visited":
		GetMostVisitedPosts(c)
		return
	case "most-liked":
		GetMostLikedPosts(c)
		return
	case "upcoming":
		GetUpcomingPosts(c)
		return
	}

	if c.Query("destination") != "" {
		GetPostsByDestination(c)
		return
	}

	page, limit, skip := pageParams(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := database.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	posts, ok := listPosts(c, bson.D{}, bson.D{{Key: "createdAt", Value: -1}}, skip, limit)
	if !ok {
		return
	}

	response := make([]gin.H, len(posts))
	for i, p := range posts {
		response[i] = postResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": response,
		"pagination": Pagination{
			TotalPages:  totalPages(total, limit),
			CurrentPage: page,
		},
	})
}

func GetPostsByDestination(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		destination = c.Param("destination")
	}
	if !models.ValidDestination(destination) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Invalid destination",
			"destinations": models.Destinations,
		})
		return
	}

	posts, ok := listPosts(c, bson.D{{Key: "destination", Value: destination}}, bson.D{{Key: "createdAt", Value: -1}}, 0, 0)
	if !ok {
		return
	}
	if len(posts) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No posts found for this destination"})
		return
	}

	response := make([]gin.H, len(posts))
	for i, p := range posts {
		response[i] = postResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

func GetMostVisitedPosts(c *gin.Context) {
	posts, ok := listPosts(c, bson.D{}, bson.D{{Key: "views", Value: -1}}, 0, 10)
	if !ok {
		return
	}

	response := make([]gin.H, len(posts))
	for i, p := range posts {
		response[i] = postResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

func GetMostLikedPosts(c *gin.Context) {
	posts, ok := listPosts(c, bson.D{}, bson.D{{Key: "likes", Value: -1}}, 0, 10)
	if !ok {
		return
	}

	response := make([]gin.H, len(posts))
	for i, p := range posts {
		response[i] = postResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

// GetUpcomingPosts lists future trips only, soonest first.
func GetUpcomingPosts(c *gin.Context) {
	match := bson.D{{Key: "postDate", Value: bson.D{{Key: "$gte", Value: time.Now()}}}}
	posts, ok := listPosts(c, match, bson.D{{Key: "postDate", Value: 1}}, 0, 10)
	if !ok {
		return
	}

	response := make([]gin.H, len(posts))
	for i, p := range posts {
		response[i] = postResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

// GetPostByID reads one post and counts the view in the same round trip.
func GetPostByID(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"views": 1}},
		mongoAfter(),
	).Decode(&post)
	if err != nil {
		writeStorageError(c, err, "Post not found")
		return
	}

	authorName := "Unknown"
	var author models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": post.Author}).Decode(&author); err == nil {
		authorName = author.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"post":       post,
		"authorName": authorName,
	})
}

type EditPostRequest struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Price       *float64       `json:"price"`
	Destination string         `json:"destination"`
	Currency    string         `json:"currency"`
	PostDate    *time.Time     `json:"postDate"`
	Sites       *[]models.Site `json:"sites"`
	Trips       *[]models.Trip `json:"trips"`
}

func EditPost(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now().Unix()}
	if req.Title != "" {
		update["title"] = req.Title
	}
	if req.Content != "" {
		update["content"] = req.Content
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Destination != "" {
		if !models.ValidDestination(req.Destination) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "Invalid destination",
				"destinations": models.Destinations,
			})
			return
		}
		update["destination"] = req.Destination
	}
	if req.Currency != "" {
		update["currency"] = req.Currency
	}
	if req.PostDate != nil {
		update["postDate"] = *req.PostDate
	}
	if req.Sites != nil {
		update["sites"] = *req.Sites
	}
	if req.Trips != nil {
		trips := *req.Trips
		for i := range trips {
			if trips[i].ID.IsZero() {
				trips[i].ID = primitive.NewObjectID()
			}
		}
		update["trips"] = trips
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.Post
	err := database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "author": userID},
		bson.M{"$set": update},
		mongoAfter(),
	).Decode(&updated)
	if err != nil {
		writeStorageError(c, err, "Post not found or unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updatedPost": updated})
}

func DeletePost(c *gin.Context) {
	postID, ok := objectIDParam(c, "postId")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var deleted models.Post
	err := database.Posts.FindOneAndDelete(ctx, bson.M{"_id": postID, "author": userID}).Decode(&deleted)
	if err != nil {
		writeStorageError(c, err, "Post not found or unauthorized")
		return
	}

	for _, img := range deleted.PostImage {
		destroyImage(ctx, img.PublicID)
	}
	for _, trip := range deleted.Trips {
		for _, img := range trip.PostImage {
			destroyImage(ctx, img.PublicID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

