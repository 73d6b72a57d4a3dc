package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/coralab/coralab-backend/internal/logger"
)

// AvatarService renders an initials avatar for members without an uploaded
// photo. The background color is picked deterministically from the name so
// regenerating an avatar never changes it.
type AvatarService interface {
	GenerateMemberAvatar(name string) (bytes.Buffer, error)
}

type avatarService struct {
	log      *logger.Logger
	bgColors []color.NRGBA
	fontFace font.Face
}

func NewAvatarService(log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log: serviceLog,
		bgColors: []color.NRGBA{
			{R: 0x0E, G: 0x7C, B: 0x7B, A: 0xFF},
			{R: 0x1D, G: 0x4E, B: 0x89, A: 0xFF},
			{R: 0xC0, G: 0x5B, B: 0x2E, A: 0xFF},
			{R: 0x5B, G: 0x2A, B: 0x86, A: 0xFF},
			{R: 0x2F, G: 0x6B, B: 0x3A, A: 0xFF},
			{R: 0x8A, G: 0x1C, B: 0x3C, A: 0xFF},
		},
		fontFace: face,
	}, nil
}

func (as *avatarService) GenerateMemberAvatar(name string) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(name))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(name)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return bytes.Buffer{}, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf, nil
}

func (as *avatarService) pickColor(name string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return as.bgColors[int(h.Sum32())%len(as.bgColors)]
}

func computeInitials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "?"
	}
	first := []rune(fields[0])
	if len(fields) == 1 {
		return strings.ToUpper(string(first[0]))
	}
	last := []rune(fields[len(fields)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
