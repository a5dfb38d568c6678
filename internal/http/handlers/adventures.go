package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/adventures"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/storage"
)

const maxImageBytes = 10 << 20 // 10 MiB

type AdventuresHandler struct {
	Repo    *adventures.Repo
	Storage storage.Storage
}

// GET /api/adventures?page=&search=&status=
func (h *AdventuresHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "status")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/adventures/:id
func (h *AdventuresHandler) Detail(c *gin.Context) {
	a, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Adventure not found."))
		return
	}
	render.Data(c, a)
}

type adventureRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=255"`
	Description string     `json:"description" binding:"max=10000"`
	Location    string     `json:"location" binding:"max=255"`
	PriceCents  int64      `json:"price_cents" binding:"required,gt=0"`
	Currency    string     `json:"currency" binding:"required,len=3"`
	Capacity    int        `json:"capacity" binding:"gte=0"`
	StartsAt    *time.Time `json:"starts_at"`
	Status      string     `json:"status" binding:"required,oneof=draft active archived"`
}

func (r adventureRequest) toInput() adventures.CreateInput {
	return adventures.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		Capacity:    r.Capacity,
		StartsAt:    r.StartsAt,
		Status:      r.Status,
	}
}

// POST /api/adventures
func (h *AdventuresHandler) Create(c *gin.Context) {
	var req adventureRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.Repo.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if adventures.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("An adventure with this title already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Adventure created.", a)
}

// PUT /api/adventures/:id
func (h *AdventuresHandler) Update(c *gin.Context) {
	var req adventureRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		if adventures.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("An adventure with this title already exists."))
			return
		}
		middleware.Fail(c, orNotFound(err, "Adventure not found."))
		return
	}
	render.Message(c, "Adventure updated.")
}

// DELETE /api/adventures/:id
func (h *AdventuresHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, orNotFound(err, "Adventure not found."))
		return
	}
	render.Message(c, "Adventure deleted.")
}

// POST /api/adventures/:id/images (multipart: file, position)
func (h *AdventuresHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()
	advID := c.Param("id")

	if _, err := h.Repo.Get(ctx, advID); err != nil {
		middleware.Fail(c, orNotFound(err, "Adventure not found."))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"file": "An image file is required."}))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"file": "Image must be 10 MB or smaller."}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Storage.Put(ctx, f, storage.PutInput{
		Dir:         "adventures",
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	position := 0
	if v, ok := c.GetPostForm("position"); ok {
		position = atoiOr(v, 0)
	}

	img, err := h.Repo.AddImage(ctx, advID, res.Key, res.URL, position)
	if err != nil {
		// db failed after upload; don't leave the object orphaned
		_ = h.Storage.Delete(ctx, res.Key)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Image uploaded.", img)
}

// DELETE /api/adventures/:id/images/:imageID
func (h *AdventuresHandler) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()
	advID := c.Param("id")
	imageID := c.Param("imageID")

	img, err := h.Repo.GetImage(ctx, advID, imageID)
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Image not found."))
		return
	}

	if err := h.Repo.DeleteImage(ctx, advID, imageID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	_ = h.Storage.Delete(ctx, img.StorageKey)
	render.Message(c, "Image deleted.")
}

type addOnRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=255"`
	PriceCents int64  `json:"price_cents" binding:"required,gt=0"`
}

// POST /api/adventures/:id/add-ons
func (h *AdventuresHandler) CreateAddOn(c *gin.Context) {
	var req addOnRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.Repo.Get(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, orNotFound(err, "Adventure not found."))
		return
	}

	ao, err := h.Repo.AddAddOn(c.Request.Context(), c.Param("id"), req.Name, req.PriceCents)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Add-on created.", ao)
}

// PUT /api/adventures/:id/add-ons/:addOnID
func (h *AdventuresHandler) UpdateAddOn(c *gin.Context) {
	var req addOnRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repo.UpdateAddOn(c.Request.Context(), c.Param("id"), c.Param("addOnID"), req.Name, req.PriceCents); err != nil {
		middleware.Fail(c, orNotFound(err, "Add-on not found."))
		return
	}
	render.Message(c, "Add-on updated.")
}

// DELETE /api/adventures/:id/add-ons/:addOnID
func (h *AdventuresHandler) DeleteAddOn(c *gin.Context) {
	if err := h.Repo.DeleteAddOn(c.Request.Context(), c.Param("id"), c.Param("addOnID")); err != nil {
		middleware.Fail(c, orNotFound(err, "Add-on not found."))
		return
	}
	render.Message(c, "Add-on deleted.")
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
