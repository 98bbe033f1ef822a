package services

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
)

// PlaceholderThumbnail is served for records without an image.
const PlaceholderThumbnail = "/placeholder.svg"

var ErrInvalidCloudinaryURL = errors.New("invalid cloudinary url")

// ThumbnailResolver maps catalog image paths to delivery URLs. Without a
// Cloudinary account it returns paths unchanged. A nil resolver is valid.
type ThumbnailResolver struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewThumbnailResolver connects to Cloudinary when cloudinaryURL is set.
func NewThumbnailResolver(cloudinaryURL, folder string, logger *zap.Logger) (*ThumbnailResolver, error) {
	r := &ThumbnailResolver{folder: strings.Trim(folder, "/"), logger: logging.OrNop(logger)}
	if cloudinaryURL == "" {
		return r, nil
	}

	u, err := url.Parse(cloudinaryURL)
	if err != nil || u.Scheme != "cloudinary" || u.Host == "" {
		return nil, fmt.Errorf("%w: expected cloudinary://<key>:<secret>@<cloud_name>", ErrInvalidCloudinaryURL)
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	r.cld = cld
	return r, nil
}

// Resolve returns the URL clients should load for a stored thumbnail path.
func (r *ThumbnailResolver) Resolve(thumbnail string) string {
	thumbnail = strings.TrimSpace(thumbnail)
	if thumbnail == "" {
		return PlaceholderThumbnail
	}
	if r == nil || r.cld == nil || isAbsoluteURL(thumbnail) {
		return thumbnail
	}

	publicID := r.publicID(thumbnail)
	img, err := r.cld.Image(publicID)
	if err != nil {
		r.logger.Warn("cloudinary asset failed", zap.String("public_id", publicID), zap.Error(err))
		return thumbnail
	}
	url, err := img.String()
	if err != nil {
		r.logger.Warn("cloudinary url failed", zap.String("public_id", publicID), zap.Error(err))
		return thumbnail
	}
	return url
}

// publicID turns "/modern-sofa-furniture.jpg" into "<folder>/modern-sofa-furniture".
func (r *ThumbnailResolver) publicID(thumbnail string) string {
	name := strings.TrimPrefix(thumbnail, "/")
	name = strings.TrimSuffix(name, path.Ext(name))
	if r.folder == "" {
		return name
	}
	return r.folder + "/" + name
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
