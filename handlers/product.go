package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tourly/database"
	"tourly/models"
)

type CreateProductRequest struct {
	Name     string  `form:"name" binding:"required"`
	Price    float64 `form:"price" binding:"required"`
	Details  string  `form:"details" binding:"required"`
	Category string  `form:"category"`
}

func CreateProduct(c *gin.Context) {
	_, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	img, err := uploadImage(ctx, file, "tourly/products")
	if err != nil {
		log.Printf("CreateProduct upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	product := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Price:     req.Price,
		Details:   req.Details,
		Category:  req.Category,
		Images:    img,
		Bookings:  []models.ProductBooking{},
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	if _, err := database.Products.InsertOne(ctx, product); err != nil {
		writeStorageError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts serves the product listings; category/sort/group query
// parameters select the projection.
func GetProducts(c *gin.Context) {
	if c.Query("group") == "category" {
		AggregateProductsByCategory(c)
		return
	}

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	switch c.Query("sort") {
	case "recent":
		opts.SetLimit(10)
	case "most-ordered":
		GetMostOrderedProducts(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetMostOrderedProducts ranks products by embedded booking count.
func GetMostOrderedProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$addFields", Value: bson.D{{Key: "bookingCount", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$bookings", bson.A{}}}}}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookingCount", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	}

	cursor, err := database.Products.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []bson.M{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// AggregateProductsByCategory counts products per category.
func AggregateProductsByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.D{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := database.Products.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate products"})
		return
	}
	defer cursor.Close(ctx)

	groups := []bson.M{}
	if err := cursor.All(ctx, &groups); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode aggregation"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

type UpdateProductRequest struct {
	Name     string   `form:"name" json:"name"`
	Price    *float64 `form:"price" json:"price"`
	Details  string   `form:"details" json:"details"`
	Category string   `form:"category" json:"category"`
}

func UpdateProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	_, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		writeStorageError(c, err, "Product not found.")
		return
	}

	update := bson.M{"updatedAt": time.Now().Unix()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Details != "" {
		update["details"] = req.Details
	}
	if req.Category != "" {
		update["category"] = req.Category
	}

	if file, err := c.FormFile("image"); err == nil {
		// Replace the hosted image before swapping the reference
		destroyImage(ctx, product.Images.PublicID)
		img, upErr := uploadImage(ctx, file, "tourly/products")
		if upErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		update["images"] = img
	}

	var updated models.Product
	err := database.Products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoAfter(),
	).Decode(&updated)
	if err != nil {
		writeStorageError(c, err, "Product not found.")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	_, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		writeStorageError(c, err, "Product not found.")
		return
	}

	destroyImage(ctx, product.Images.PublicID)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

type ProductBookingRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// BookProduct adds the caller to the product's embedded bookings, once.
func BookProduct(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProductBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Products.UpdateOne(ctx,
		bson.M{"_id": productID, "bookings.userId": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"bookings": models.ProductBooking{
			UserID:      userID,
			BookingDate: time.Now().Unix(),
		}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if res.MatchedCount == 0 {
		count, cErr := database.Products.CountDocuments(ctx, bson.M{"_id": productID})
		if cErr == nil && count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"message": "Product already booked."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product booked successfully."})
}

func CancelProductBooking(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProductBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$pull": bson.M{"bookings": bson.M{"userId": userID}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking canceled successfully."})
}

func GetBookingsByProductID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		writeStorageError(c, err, "Product not found.")
		return
	}

	c.JSON(http.StatusOK, product.Bookings)
}

// GetAllProductBookings flattens bookings across all products (admin view).
func GetAllProductBookings(c *gin.Context) {
	_, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products.Find(ctx, bson.M{"bookings.0": bson.M{"$exists": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	all := []gin.H{}
	for _, p := range products {
		for _, b := range p.Bookings {
			all = append(all, gin.H{
				"productId":   p.ID.Hex(),
				"productName": p.Name,
				"userId":      b.UserID.Hex(),
				"bookingDate": b.BookingDate,
			})
		}
	}

	c.JSON(http.StatusOK, all)
}
