package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// VisionService runs a cheap label-detection pass before the generative
// analysis, so obviously non-food photos are rejected without burning an AI
// call.
type VisionService struct {
	client *rekognition.Client
}

func NewVisionService() (*VisionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &VisionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectLabels returns the top labels for a base64-encoded image (raw
// base64, no data-URI prefix).
func (v *VisionService) DetectLabels(ctx context.Context, imageBase64 string) ([]string, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, errors.New("invalid base64 image data")
	}

	out, err := v.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}

var foodLabels = map[string]struct{}{
	"food": {}, "meal": {}, "dish": {}, "snack": {}, "dessert": {},
	"fruit": {}, "vegetable": {}, "beverage": {}, "drink": {},
	"bread": {}, "plate": {}, "breakfast": {}, "lunch": {}, "dinner": {},
}

// LooksLikeFood reports whether any detected label suggests the photo
// contains food.
func LooksLikeFood(labels []string) bool {
	for _, l := range labels {
		if _, ok := foodLabels[strings.ToLower(l)]; ok {
			return true
		}
	}
	return false
}
