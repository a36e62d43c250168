package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// rekognitionAPI is the subset of the Rekognition client used here
type rekognitionAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// Rekognition reads text with AWS Rekognition DetectText
type Rekognition struct {
	client        rekognitionAPI
	minConfidence float32
}

// NewRekognition loads the default AWS credential chain for region
func NewRekognition(ctx context.Context, region string) (*Rekognition, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newRekognitionWithClient(rekognition.NewFromConfig(cfg)), nil
}

func newRekognitionWithClient(client rekognitionAPI) *Rekognition {
	return &Rekognition{client: client, minConfidence: 80}
}

func (r *Rekognition) Name() string { return "rekognition" }

// ExtractText joins the detected LINE entries in reading order
func (r *Rekognition) ExtractText(ctx context.Context, image []byte) (string, error) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &rekognitiontypes.Image{Bytes: image},
		Filters: &rekognitiontypes.DetectTextFilters{
			WordFilter: &rekognitiontypes.DetectionFilter{
				MinConfidence: aws.Float32(r.minConfidence),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("rekognition detect text: %w", err)
	}

	var lines []string
	for _, d := range out.TextDetections {
		if d.Type != rekognitiontypes.TextTypesLine {
			continue
		}
		if text := strings.TrimSpace(aws.ToString(d.DetectedText)); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, " "), nil
}
