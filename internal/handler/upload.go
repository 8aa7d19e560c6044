package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/middleware"
	"github.com/smarotkar/trek-booking/internal/store"
)

// UploadHandler stores multipart image uploads on local disk and
// returns the URL they are served from.  The upload directory is
// exposed statically under /uploads by the router.
type UploadHandler struct {
	Dir   string
	Store *store.Store
}

func NewUploadHandler(dir string, st *store.Store) *UploadHandler {
	return &UploadHandler{Dir: dir, Store: st}
}

// saveFile writes the named multipart file under the upload dir with a
// timestamp prefix to keep names unique, returning the public URL.
func (h *UploadHandler) saveFile(c echo.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Image handles POST /upload for event media.
func (h *UploadHandler) Image(c echo.Context) error {
	url, err := h.saveFile(c, "image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded"})
		}
		log.Printf("upload: save image: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"imageUrl": url})
}

// ProfilePhoto handles POST /upload-profile-photo: stores the file and
// patches the caller's profile photo field.
func (h *UploadHandler) ProfilePhoto(c echo.Context) error {
	url, err := h.saveFile(c, "photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded"})
		}
		log.Printf("upload: save photo: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid := middleware.Identity(c).UserID
	u, err := h.Store.Users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("upload: load user for photo: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	p := u.Profile
	p.Photo = url
	if _, err := h.Store.Users.UpdateProfile(ctx, uid, p); err != nil {
		log.Printf("upload: update profile photo: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Profile photo updated successfully",
		"photoUrl": url,
		"profile":  echo.Map{"photo": url},
	})
}
