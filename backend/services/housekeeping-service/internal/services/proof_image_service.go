package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const proofStampLayout = "02 Jan 2006 03:04 PM"

// ObjectUploader stores a blob and returns a durable URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

type ProofImageService struct {
	uploader ObjectUploader
	loc      *time.Location
	now      func() time.Time
}

// NewProofImageService accepts a nil uploader; every proof then falls back to
// an inline data URL.
func NewProofImageService(uploader ObjectUploader, loc *time.Location, now func() time.Time) *ProofImageService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProofImageService{uploader: uploader, loc: loc, now: now}
}

// Process stamps raw with the capture time and uploads it. When stamping or
// upload fails the raw image is returned inline as a data URL.
func (s *ProofImageService) Process(ctx context.Context, raw []byte) (dtos.ProofUploadResponse, error) {
	if len(raw) == 0 || len(raw) > constants.ProofImageMaxBytes {
		return dtos.ProofUploadResponse{}, utils.NewAppError(
			http.StatusBadRequest, internal_utils.ErrCodeInvalidImage,
			fmt.Sprintf("Image must be between 1 byte and %d MB", constants.ProofImageMaxBytes>>20),
			internal_utils.ErrInvalidImage,
		)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return dtos.ProofUploadResponse{}, utils.NewAppError(
			http.StatusBadRequest, internal_utils.ErrCodeInvalidImage,
			"Could not read the image", fmt.Errorf("%w: %v", internal_utils.ErrInvalidImage, err),
		)
	}

	now := s.now().In(s.loc)
	stamped := StampImage(img, now.Format(proofStampLayout))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, stamped, imaging.JPEG, imaging.JPEGQuality(constants.ProofImageJPEGQuality)); err != nil {
		utils.Logger.WithError(err).Warn("Failed to encode stamped proof; using raw image")
		return inlineProof(raw), nil
	}

	if s.uploader == nil {
		return inlineProof(raw), nil
	}
	objectName := fmt.Sprintf("proofs/%s/%s.jpg", now.Format("2006/01/02"), uuid.NewString())
	url, err := s.uploader.Upload(ctx, objectName, buf.Bytes(), "image/jpeg")
	if err != nil {
		utils.Logger.WithError(err).Warn("Proof upload failed; using raw image")
		return inlineProof(raw), nil
	}
	return dtos.ProofUploadResponse{URL: url, Stamped: true, Uploaded: true}, nil
}

// StampImage downsizes img to the proof size limit and draws label in a dark
// band at the bottom-left corner.
func StampImage(img image.Image, label string) *image.NRGBA {
	maxDim := constants.ProofImageMaxDimension
	var dst *image.NRGBA
	if b := img.Bounds(); b.Dx() > maxDim || b.Dy() > maxDim {
		dst = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	} else {
		dst = imaging.Clone(img)
	}

	face := basicfont.Face7x13
	pad := 4
	textW := font.MeasureString(face, label).Ceil()
	lineH := face.Metrics().Height.Ceil()

	tag := imaging.New(textW+2*pad, lineH+2*pad, color.NRGBA{A: 170})
	d := &font.Drawer{
		Dst:  tag,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(pad, pad+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(label)

	bounds := dst.Bounds()
	scale := bounds.Dy() / 20 / tag.Bounds().Dy()
	if scale < 1 {
		scale = 1
	}
	if w := tag.Bounds().Dx() * scale; w > bounds.Dx() {
		scale = 1
	}
	tag = imaging.Resize(tag, tag.Bounds().Dx()*scale, 0, imaging.NearestNeighbor)

	margin := bounds.Dy() / 50
	pos := image.Pt(bounds.Min.X+margin, bounds.Max.Y-tag.Bounds().Dy()-margin)
	return imaging.Overlay(dst, tag, pos, 1.0)
}

func inlineProof(raw []byte) dtos.ProofUploadResponse {
	return dtos.ProofUploadResponse{
		URL: "data:" + http.DetectContentType(raw) + ";base64," + base64.StdEncoding.EncodeToString(raw),
	}
}
