package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/media"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// AvatarService draws an initials avatar for a freshly registered user and
// stores it under the media root.
type AvatarService interface {
	CreateUserAvatar(ctx context.Context, user *types.User) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	mediaStore *media.Store
	fontFace   font.Face
	bgColors   []color.NRGBA
}

var avatarPalette = []color.NRGBA{
	{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
	{R: 0x42, G: 0xA5, B: 0xF5, A: 0xFF},
	{R: 0xEF, G: 0x53, B: 0x50, A: 0xFF},
	{R: 0xAB, G: 0x47, B: 0xBC, A: 0xFF},
	{R: 0xFF, G: 0xA7, B: 0x26, A: 0xFF},
	{R: 0x26, G: 0xA6, B: 0x9A, A: 0xFF},
}

func NewAvatarService(fontPath string, userRepo repos.UserRepo, mediaStore *media.Store, log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("avatar font path is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("load avatar font: %w", err)
	}

	return &avatarService{
		log:        serviceLog,
		userRepo:   userRepo,
		mediaStore: mediaStore,
		fontFace:   face,
		bgColors:   avatarPalette,
	}, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	rel, err := as.mediaStore.Save("avatars", fmt.Sprintf("%s.png", user.ID), buf.Bytes())
	if err != nil {
		return fmt.Errorf("store avatar: %w", err)
	}

	if err := as.userRepo.UpdateAvatarPath(ctx, nil, user.ID, rel); err != nil {
		return fmt.Errorf("update avatar path: %w", err)
	}
	user.AvatarPath = rel
	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(user))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	dc.SetFontFace(as.fontFace)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(initials(user), float64(size)/2, float64(size)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf, nil
}

func (as *avatarService) pickColor(user *types.User) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(user.ID.String()))
	return as.bgColors[int(h.Sum32())%len(as.bgColors)]
}

func initials(user *types.User) string {
	var b strings.Builder
	for _, part := range []string{user.FirstName, user.LastName} {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	if b.Len() == 0 {
		for _, r := range user.Username {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
