package services

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// OCROptions selects the preprocessing applied before text extraction.
// Adaptive and Otsu thresholding are mutually exclusive pipeline options;
// when both are enabled, adaptive wins. Otsu applies only when adaptive is
// off. This precedence is fixed here, not left to configuration order.
type OCROptions struct {
	Languages         []string
	AdaptiveThreshold bool
	OtsuThreshold     bool
}

// OCRService extracts text from video frames with Tesseract. It owns one
// gosseract client and is not safe for concurrent use; the pipeline calls it
// from a single goroutine.
type OCRService struct {
	client  *gosseract.Client
	options OCROptions
}

// NewOCRService creates and configures a Tesseract client. Language codes
// are joined the way Tesseract expects ("eng+deu").
func NewOCRService(options OCROptions) (*OCRService, error) {
	client := gosseract.NewClient()

	langs := options.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	if err := client.SetLanguage(strings.Join(langs, "+")); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &OCRService{client: client, options: options}, nil
}

// ExtractText runs OCR on one frame and returns the trimmed text. A frame
// that fails OCR yields an error the caller can degrade to empty text.
func (o *OCRService) ExtractText(frame gocv.Mat) (string, error) {
	processed := o.preprocess(frame)
	defer processed.Close()

	encoded, err := gocv.IMEncode(".png", processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	defer encoded.Close()

	if err := o.client.SetImageFromBytes(encoded.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set OCR image: %w", err)
	}
	text, err := o.client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// preprocess converts the frame to grayscale, denoises it, and applies the
// configured thresholding. Returns a new Mat the caller must close.
func (o *OCRService) preprocess(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	denoised := gocv.NewMat()
	defer denoised.Close()
	gocv.BilateralFilter(gray, &denoised, 9, 75, 75)

	out := gocv.NewMat()
	switch {
	case o.options.AdaptiveThreshold:
		gocv.AdaptiveThreshold(denoised, &out, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, 11, 2)
	case o.options.OtsuThreshold:
		gocv.Threshold(denoised, &out, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
	default:
		denoised.CopyTo(&out)
	}
	return out
}

// Close releases the Tesseract client.
func (o *OCRService) Close() error {
	return o.client.Close()
}
