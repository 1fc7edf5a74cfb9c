package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	listingdomain "github.com/tharun69CS/EcoFinds/internal/listing/domain"
	listingusecase "github.com/tharun69CS/EcoFinds/internal/listing/usecase"
	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
	userusecase "github.com/tharun69CS/EcoFinds/internal/user/usecase"
)

type listingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toListingResponse(l *listingdomain.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    string(l.Category),
		Price:       l.Price,
		ImageURL:    l.ImageURL,
		User:        l.OwnerID.String(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError maps the error taxonomy onto HTTP statuses. Every failure is
// terminal; nothing here is retried.
func respondError(c *gin.Context, err error) {
	var verr *listingdomain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  verr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "server error"
	switch {
	case errors.Is(err, listingdomain.ErrListingNotFound):
		status, message = http.StatusNotFound, "listing not found"
	case errors.Is(err, listingdomain.ErrForbidden):
		status, message = http.StatusForbidden, "not authorized to modify this listing"
	case errors.Is(err, listingdomain.ErrUnavailable):
		status, message = http.StatusServiceUnavailable, "storage temporarily unavailable"
	case errors.Is(err, listingusecase.ErrNoFileProvided):
		status, message = http.StatusBadRequest, "please upload a file"
	case errors.Is(err, listingusecase.ErrPayloadTooLarge):
		status, message = http.StatusRequestEntityTooLarge, "file exceeds the 1 MiB limit"
	case errors.Is(err, listingusecase.ErrUnsupportedMediaType):
		status, message = http.StatusUnsupportedMediaType, "only jpeg, jpg, png and gif images are allowed"
	case errors.Is(err, userusecase.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, userdomain.ErrDuplicateEmail):
		status, message = http.StatusConflict, "email already exists"
	case errors.Is(err, userdomain.ErrDuplicateUsername):
		status, message = http.StatusConflict, "username already exists"
	case errors.Is(err, userdomain.ErrUserNotFound):
		status, message = http.StatusNotFound, "user not found"
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}
