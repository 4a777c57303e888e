package asset

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	// uploadTransformation bounds stored images to 1920x1080 without cropping.
	uploadTransformation = "c_limit,h_1080,w_1920,q_auto:good,f_auto"
	// displayTransformation is applied when deriving gallery listing URLs.
	displayTransformation = "c_limit,h_600,w_800,q_auto:good,f_auto"
)

// Cloudinary implements Store against the Cloudinary upload API.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

var _ Store = (*Cloudinary)(nil)

// NewCloudinary builds a client from a CLOUDINARY_URL style connection string.
func NewCloudinary(cloudinaryURL, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

// Upload sends the file to Cloudinary and returns its public id and secure URL.
func (c *Cloudinary) Upload(ctx context.Context, file io.Reader) (*UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         c.folder,
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	return &UploadResult{PublicID: resp.PublicID, URL: resp.SecureURL}, nil
}

// Delete destroys the remote asset by public id.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	if _, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

// OptimizedURL derives a bounded, auto-quality display URL for the asset.
func (c *Cloudinary) OptimizedURL(publicID string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("cloudinary image: %w", err)
	}
	img.Transformation = displayTransformation
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url: %w", err)
	}
	return url, nil
}
