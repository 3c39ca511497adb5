package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUploadsDisabled = errors.New("file uploads are not configured")

type UploadOptions struct {
	Folder       string
	PublicID     string
	ResourceType string
}

// Uploader stores a file and returns a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	overwrite := true
	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     opts.PublicID,
		Folder:       opts.Folder,
		ResourceType: opts.ResourceType,
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}

// AvatarService uploads profile pictures and links them to the profile.
type AvatarService struct {
	profiles *ProfileService
	uploader Uploader
}

func NewAvatarService(profiles *ProfileService, uploader Uploader) *AvatarService {
	return &AvatarService{profiles: profiles, uploader: uploader}
}

func (s *AvatarService) Upload(ctx context.Context, userID string, r io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}
	// Reject unknown users before sending bytes anywhere.
	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return "", err
	}
	url, err := s.uploader.Upload(ctx, r, UploadOptions{
		Folder:       "tutoring_avatars",
		PublicID:     "avatar_" + userID,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	if _, err := s.profiles.SetAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
