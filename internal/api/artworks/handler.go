package artworks

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"artmarket-backend/internal/infra/filestore"
	"artmarket-backend/internal/ingest"
	"artmarket-backend/internal/store"
)

type Handler struct {
	pipeline *ingest.Pipeline
	store    store.Store
	delivery filestore.Backend
	disk     *filestore.Disk
}

func NewHandler(pipeline *ingest.Pipeline, st store.Store, delivery filestore.Backend, disk *filestore.Disk) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    st,
		delivery: delivery,
		disk:     disk,
	}
}

// ------------------------------
// POST /api/artworks (multipart)
// ------------------------------
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	var ownerID *uint
	if id := c.GetUint("user_id"); id != 0 {
		ownerID = &id
	}

	art, err := h.pipeline.Ingest(c.Request.Context(), ingest.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
		Title:       textPolicy.Sanitize(c.PostForm("title")),
		Description: textPolicy.Sanitize(c.PostForm("description")),
		PriceCents:  parsePriceCents(c.PostForm("price_cents")),
		OwnerID:     ownerID,
	})
	if errors.Is(err, ingest.ErrNoFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toArtworkDTO(art))
}

// ------------------------------
// GET /api/artworks
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	arts, err := h.store.ListArtworks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	out := make([]ArtworkDTO, 0, len(arts))
	for i := range arts {
		out = append(out, toArtworkDTO(&arts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /api/artworks/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	art, err := h.store.ArtworkByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}
	c.JSON(http.StatusOK, toArtworkDTO(art))
}

// ------------------------------
// GET /files/:filename
// ------------------------------
func (h *Handler) ServeFile(c *gin.Context) {
	key := c.Param("filename")
	if key == "" || key != filestore.SanitizeName(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	// Prefer the remote copy when the backend can sign a URL for it.
	if url, ok := h.delivery.URLFor(key); ok {
		c.Redirect(http.StatusTemporaryRedirect, url)
		return
	}

	path := h.disk.Path(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.File(path)
}
