package cloudinary

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/primeitclub/ict-meetup-api/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type UploadResult struct {
	SecureURL string
	PublicID  string
}

type Client struct {
	cld *cloudinary.Cloudinary
}

func CreateCloudinaryClient(conf config.CloudinaryConfig) (*Client, error) {
	cld, err := cloudinary.NewFromParams(conf.CloudName, conf.APIKey, conf.APISecret)
	if err != nil {
		return nil, fmt.Errorf("creating cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true
	cld.Upload.Client = http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Client{cld: cld}, nil
}

// UploadImage uploads the local file at path into folder.
func (c *Client) UploadImage(ctx context.Context, path string, folder string) (UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, path, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return UploadResult{}, err
	}

	if resp.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return UploadResult{SecureURL: resp.SecureURL, PublicID: resp.PublicID}, nil
}
