package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rkhub/config"
	"rkhub/infras/otel/mocks"
	s3Mocks "rkhub/infras/s3/mocks"
	galleryMocks "rkhub/internal/domains/gallery/mocks"
	"rkhub/internal/domains/gallery/model"
	"rkhub/internal/domains/gallery/model/dto"
	"rkhub/internal/domains/gallery/service"
	"rkhub/shared"
	cacheMocks "rkhub/shared/cache/mocks"
	gDto "rkhub/shared/dto"
	"rkhub/shared/failure"
)

type fixture struct {
	svc   service.Gallery
	repo  *galleryMocks.MockGallery
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  galleryMocks.NewMockGallery(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.App.Gallery.ThumbnailWidth = 16
	cfg.App.Gallery.ThumbnailHeight = 16

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) expectInvalidate() {
	f.cache.EXPECT().Bump(gomock.Any(), "version:gallery:get_all").Return(int64(1), nil)
	f.cache.EXPECT().Delete(gomock.Any(), "gallery:get_all").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "gallery:get_all:*").Return(nil)
}

func strPtr(s string) *string {
	return &s
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, width, height))))

	return buf.Bytes()
}

func TestGalleryService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newFixture(t)
		req := dto.CreateGalleryItemRequest{Title: "Annual day", ImageURL: "https://cdn.example.com/a.jpg", Description: strPtr("Stage")}

		f.repo.EXPECT().Insert(gomock.Any(), model.GalleryItem{
			Title:       "Annual day",
			ImageURL:    "https://cdn.example.com/a.jpg",
			Description: strPtr("Stage"),
		}).Return(nil)
		f.expectInvalidate()

		assert.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("invalid image url", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Create(context.Background(), dto.CreateGalleryItemRequest{Title: "x", ImageURL: "nope"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		err := f.svc.Create(context.Background(), dto.CreateGalleryItemRequest{Title: "x", ImageURL: "https://cdn.example.com/a.jpg"})

		assert.Error(t, err)
	})
}

func TestGalleryService_List(t *testing.T) {
	t.Run("newest first with limit", func(t *testing.T) {
		f := newFixture(t)
		params := gDto.NewestFirst(6)
		key := shared.BuildCacheKeyWithQuery("gallery:get_all", params, gDto.FilterGroup{}) + ":v=0"

		rows := make([]model.GalleryItem, 6)
		for i := range rows {
			rows[i] = model.GalleryItem{ID: string(rune('a' + i)), Title: "photo", ImageURL: "https://cdn.example.com/p.jpg"}
		}

		f.cache.EXPECT().Version(gomock.Any(), "version:gallery:get_all").Return(int64(0), nil)
		f.cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().GetAll(gomock.Any(), params, gDto.FilterGroup{}).Return(rows, nil)
		f.cache.EXPECT().Save(gomock.Any(), key, gomock.Any(), 300).Return(nil)

		res, err := f.svc.List(context.Background(), gDto.QueryParams{Limit: 6})

		require.NoError(t, err)
		assert.Len(t, res, 6)
		assert.Equal(t, "a", res[0].ID)
		assert.Nil(t, res[0].Description)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Version(gomock.Any(), "version:gallery:get_all").Return(int64(3), nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.svc.List(context.Background(), gDto.NewestFirst(0))

		assert.Error(t, err)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	filter := shared.FilterByID("abc", model.FieldID, model.TableName)

	t.Run("removes row and bucket objects", func(t *testing.T) {
		f := newFixture(t)
		url := "https://cdn.example.com/gallery/abc-123.png"

		f.repo.EXPECT().DeleteReturning(gomock.Any(), filter).Return(model.GalleryItem{ID: "abc", ImageURL: url}, nil)
		f.expectInvalidate()
		f.s3.EXPECT().ObjectKeyFromURL(url).Return("gallery/abc-123.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "gallery/abc-123.png").Return(nil)
		f.s3.EXPECT().DeleteFile(gomock.Any(), "gallery/thumbnails/abc-123.jpg").Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "abc"))
	})

	t.Run("foreign image is left alone", func(t *testing.T) {
		f := newFixture(t)
		url := "https://images.example.org/x.jpg"

		f.repo.EXPECT().DeleteReturning(gomock.Any(), filter).Return(model.GalleryItem{ID: "abc", ImageURL: url}, nil)
		f.expectInvalidate()
		f.s3.EXPECT().ObjectKeyFromURL(url).Return("")

		assert.NoError(t, f.svc.Delete(context.Background(), "abc"))
	})

	t.Run("bucket failure does not fail the delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().DeleteReturning(gomock.Any(), filter).Return(model.GalleryItem{ID: "abc", ImageURL: "u"}, nil)
		f.expectInvalidate()
		f.s3.EXPECT().ObjectKeyFromURL("u").Return("other/u.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "other/u.png").Return(errors.New("access denied"))

		assert.NoError(t, f.svc.Delete(context.Background(), "abc"))
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().DeleteReturning(gomock.Any(), filter).Return(model.GalleryItem{}, nil)
		f.expectInvalidate()

		assert.NoError(t, f.svc.Delete(context.Background(), "abc"))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().DeleteReturning(gomock.Any(), filter).Return(model.GalleryItem{}, errors.New("timeout"))

		assert.Error(t, f.svc.Delete(context.Background(), "abc"))
	})
}

func TestGalleryService_UploadImage(t *testing.T) {
	t.Run("uploads image and thumbnail", func(t *testing.T) {
		f := newFixture(t)
		data := pngBytes(t, 64, 32)

		f.s3.EXPECT().
			UploadFileBytes(gomock.Any(), "gallery", gomock.Any(), "image/png", data).
			DoAndReturn(func(_ context.Context, dir, name, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(name, ".png"))

				return "https://cdn.example.com/" + dir + "/" + name, nil
			})
		f.s3.EXPECT().
			UploadFileBytes(gomock.Any(), "gallery/thumbnails", gomock.Any(), "image/jpeg", gomock.Any()).
			DoAndReturn(func(_ context.Context, dir, name, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(name, ".jpg"))

				return "https://cdn.example.com/" + dir + "/" + name, nil
			})

		res, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{
			FileName:    "stage.png",
			ContentType: "image/png",
			Size:        int64(len(data)),
			Data:        data,
		})

		require.NoError(t, err)
		assert.Equal(t, "stage.png", res.FileName)
		assert.Contains(t, res.URL, "https://cdn.example.com/gallery/")
		assert.Contains(t, res.ThumbnailURL, "https://cdn.example.com/gallery/thumbnails/")
	})

	t.Run("unsupported content type", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{
			FileName:    "notes.pdf",
			ContentType: "application/pdf",
			Size:        10,
			Data:        []byte("%PDF-1.4"),
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("undecodable image keeps the original", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().UploadFileBytes(gomock.Any(), "gallery", gomock.Any(), "image/webp", gomock.Any()).
			Return("https://cdn.example.com/gallery/x.webp", nil)

		res, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{
			FileName:    "x.webp",
			ContentType: "image/webp",
			Size:        4,
			Data:        []byte("RIFF"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/gallery/x.webp", res.URL)
		assert.Empty(t, res.ThumbnailURL)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket missing"))

		_, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{
			FileName:    "a.png",
			ContentType: "image/png",
			Size:        3,
			Data:        []byte("abc"),
		})

		assert.Error(t, err)
	})
}
