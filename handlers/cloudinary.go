package handlers

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"tourly/models"
)

// uploadImage pushes a multipart file to cloudinary and returns its hosted
// reference.
func uploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (models.Image, error) {
	cld, err := cloudinary.NewFromURL(appConfig.CloudinaryURL)
	if err != nil {
		return models.Image{}, err
	}

	src, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer src.Close()

	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         folder,
		Transformation: "c_limit,w_1600,h_1600,q_auto",
	})
	if err != nil {
		return models.Image{}, err
	}

	return models.Image{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// destroyImage removes a hosted image. Best effort: the owning document is
// already gone or about to be replaced, so failures are only logged.
func destroyImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}

	cld, err := cloudinary.NewFromURL(appConfig.CloudinaryURL)
	if err != nil {
		log.Printf("Cloudinary configuration error: %v", err)
		return
	}

	if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		log.Printf("Failed to delete cloudinary image %s: %v", publicID, err)
	}
}
