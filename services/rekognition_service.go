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

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeLabels returns the top labels for a base64-encoded image
func (r *RekognitionService) RecognizeLabels(base64Img string) ([]string, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}

// SuggestActivity maps a workout photo to a probable activity type so the
// app can prefill the log form. Returns "" when no label matches.
func (r *RekognitionService) SuggestActivity(base64Img string) (string, []string, error) {
	labels, err := r.RecognizeLabels(base64Img)
	if err != nil {
		return "", nil, err
	}
	return SuggestActivityFromLabels(labels), labels, nil
}

var labelActivities = map[string]string{
	"bicycle":       "cycling",
	"cycling":       "cycling",
	"running":       "running",
	"jogging":       "running",
	"swimming":      "swimming",
	"swimming pool": "swimming",
	"yoga":          "yoga",
	"gym":           "strength training",
	"dumbbell":      "strength training",
	"weights":       "strength training",
	"hiking":        "hiking",
	"walking":       "walking",
	"tennis":        "tennis",
	"basketball":    "basketball",
	"football":      "football",
	"soccer":        "football",
	"dance":         "dancing",
	"rowing":        "rowing",
	"skiing":        "skiing",
	"skateboard":    "skateboarding",
}

func SuggestActivityFromLabels(labels []string) string {
	for _, l := range labels {
		if act, ok := labelActivities[strings.ToLower(l)]; ok {
			return act
		}
	}
	return ""
}
