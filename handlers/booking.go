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

type CreateBookingRequest struct {
	Date      string `json:"date" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Details   string `json:"details" binding:"required"`
	TripSite  string `json:"tripSite" binding:"required"`
	Travelers int    `json:"travelers"`
}

// CreateBooking files a pending booking against an existing post. The
// confirmation emails and push notification run off the request path; the
// booking is already persisted whether or not they go out.
func CreateBooking(c *gin.Context) {
	postID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required.", "error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	if req.Travelers < 1 {
		req.Travelers = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		writeStorageError(c, err, "Post not found")
		return
	}

	booking := models.Booking{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    models.BookingPending,
		Date:      date,
		Details:   req.Details,
		Travelers: req.Travelers,
		TripSite:  req.TripSite,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	if _, err := database.Bookings.InsertOne(ctx, booking); err != nil {
		writeStorageError(c, err, "")
		return
	}

	go mailSender.SendBookingRequested(booking, post.Title)
	SendPushNotification(userID, "Booking received",
		"Your booking for "+post.Title+" is pending review")

	c.JSON(http.StatusCreated, booking)
}

func GetBookings(c *gin.Context) {
	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	filter := bson.M{"userId": userID}
	if isAdmin {
		filter = bson.M{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Bookings.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func GetBookingByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var booking models.Booking
	if err := database.Bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		writeStorageError(c, err, "Booking not found")
		return
	}

	if booking.UserID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingRequest is the generic partial update. Status is deliberately
// bindable so the handler can refuse it: status only moves through the
// approve/cancel transitions.
type UpdateBookingRequest struct {
	Date      *string `json:"date"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Details   *string `json:"details"`
	TripSite  *string `json:"tripSite"`
	Travelers *int    `json:"travelers"`
	Status    *string `json:"status"`
}

func UpdateBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Status cannot be updated directly. Use the approve or cancel endpoints.",
		})
		return
	}

	update := bson.M{"updatedAt": time.Now().Unix()}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
		update["date"] = date
	}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Details != nil {
		update["details"] = *req.Details
	}
	if req.TripSite != nil {
		update["tripSite"] = *req.TripSite
	}
	if req.Travelers != nil && *req.Travelers >= 1 {
		update["travelers"] = *req.Travelers
	}

	filter := bson.M{"_id": id}
	if !isAdmin {
		filter["userId"] = userID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.Booking
	err := database.Bookings.FindOneAndUpdate(ctx, filter, bson.M{"$set": update}, mongoAfter()).Decode(&updated)
	if err != nil {
		writeStorageError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	filter := bson.M{"_id": id}
	if !isAdmin {
		filter["userId"] = userID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Bookings.DeleteOne(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// transitionBooking moves a booking to next through the transition table. The
// status value is part of the update filter, so a concurrent transition loses
// cleanly instead of overwriting.
func transitionBooking(ctx context.Context, booking models.Booking, next models.BookingStatus) (models.Booking, bool, error) {
	if !booking.Status.CanTransition(next) {
		return booking, false, nil
	}

	var updated models.Booking
	err := database.Bookings.FindOneAndUpdate(ctx,
		bson.M{"_id": booking.ID, "status": booking.Status},
		bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now().Unix()}},
		mongoAfter(),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return booking, false, nil
	}
	if err != nil {
		return booking, false, err
	}
	return updated, true, nil
}

func ApproveBooking(c *gin.Context) {
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

	var booking models.Booking
	if err := database.Bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		writeStorageError(c, err, "Booking not found")
		return
	}

	updated, moved, err := transitionBooking(ctx, booking, models.BookingApproved)
	if err != nil {
		writeStorageError(c, err, "")
		return
	}
	if !moved {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Booking cannot be approved from status " + string(booking.Status),
		})
		return
	}

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": updated.PostID}).Decode(&post); err == nil {
		go mailSender.SendBookingApproved(updated, post.Title)
		SendPushNotification(updated.UserID, "Booking approved",
			"Your booking for "+post.Title+" was approved")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking approved successfully",
		"booking": updated,
	})
}

func CancelBooking(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var booking models.Booking
	if err := database.Bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		writeStorageError(c, err, "Booking not found")
		return
	}

	if booking.UserID != userID && !isAdmin && !appConfig.BookingCancelAny {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only cancel your own bookings"})
		return
	}

	updated, moved, err := transitionBooking(ctx, booking, models.BookingCanceled)
	if err != nil {
		writeStorageError(c, err, "")
		return
	}
	if !moved {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Booking cannot be canceled from status " + string(booking.Status),
		})
		return
	}

	SendPushNotification(updated.UserID, "Booking canceled", "Your booking was canceled")

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking canceled successfully",
		"booking": updated,
	})
}
