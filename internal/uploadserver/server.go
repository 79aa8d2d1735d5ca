package uploadserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps a single image upload at 10MB.
const maxUploadBytes = 10 << 20

// Server is the standalone image upload service the admin dashboard talks
// to. It writes product images straight into the storefront's static
// image directory.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	dir        string
	urlBase    string
}

// New builds a Server that stores uploads under dir and reports their
// public URLs under urlBase.
func New(addr, dir, urlBase string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	s := &Server{logger: logger, dir: dir, urlBase: urlBase}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.MaxMultipartMemory = maxUploadBytes

	router.POST("/api/upload-image", s.uploadImage)
	router.GET("/api/health", s.health)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "uploadDir": s.dir})
}

// uploadImage accepts a multipart "file" part plus an optional "filename"
// override. Only image mimetypes are accepted.
func (s *Server) uploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB limit"})
		return
	}
	if !isImage(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image files are allowed"})
		return
	}

	name := safeFilename(c.PostForm("filename"), header.Filename)
	dst := filepath.Join(s.dir, name)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		s.logger.Printf("uploadserver: save file=%s error=%v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}

	s.logger.Printf("uploadserver: stored file=%s size=%d", name, header.Size)
	c.JSON(http.StatusOK, gin.H{
		"url":      path.Join(s.urlBase, name),
		"filename": name,
	})
}

func isImage(header *multipart.FileHeader) bool {
	return strings.HasPrefix(header.Header.Get("Content-Type"), "image/")
}

// safeFilename takes the caller's override when given, falls back to the
// original name, and flattens any path components so uploads cannot
// escape the image directory. A nameless upload gets a random name.
func safeFilename(override, original string) string {
	name := strings.TrimSpace(override)
	if name == "" {
		name = original
	}
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = uuid.NewString()
	}
	return name
}
