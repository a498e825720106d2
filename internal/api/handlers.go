package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JAOCruz/nayib/config"
	"github.com/JAOCruz/nayib/internal/carousel"
	"github.com/JAOCruz/nayib/internal/catalog"
	"github.com/JAOCruz/nayib/internal/contact"
	"github.com/JAOCruz/nayib/internal/detail"
	"github.com/JAOCruz/nayib/internal/filter"
	"github.com/JAOCruz/nayib/internal/models"
	"github.com/JAOCruz/nayib/internal/views"
)

const (
	defaultInquiryLimit = 50
	maxInquiryLimit     = 500
)

// CatalogLoader fetches the catalog document for one request.
type CatalogLoader interface {
	Load(ctx context.Context) (*models.Catalog, error)
}

// ContactSubmitter relays and records a contact submission.
type ContactSubmitter interface {
	Submit(ctx context.Context, submission contact.Submission) (*models.Inquiry, error)
}

// InquiryReader reads recorded inquiries back.
type InquiryReader interface {
	RecentInquiries(limit int) ([]models.Inquiry, error)
	InquiriesBySubject(subjectID string) ([]models.Inquiry, error)
}

type Handler struct {
	catalog   CatalogLoader
	images    *config.CDNConfig
	contact   ContactSubmitter
	inquiries InquiryReader
	pageSize  int
	logger    *logrus.Logger
}

// DetailResponse is the body of GET /api/detail. Exactly one of Listing,
// Prefill or NotFound is set, matching Kind.
type DetailResponse struct {
	Kind     detail.Kind          `json:"kind"`
	Listing  *views.ListingDetail `json:"listing,omitempty"`
	Carousel *carousel.State      `json:"carousel,omitempty"`
	Prefill  *detail.Prefill      `json:"prefill,omitempty"`
	NotFound *detail.NotFound     `json:"not_found,omitempty"`
}

// SolaresResponse wraps a solares page with the filter inputs that were
// replaced by their defaults.
type SolaresResponse struct {
	views.SolaresView
	Warnings []filter.ValidationError `json:"warnings"`
}

// NewHandler wires the HTTP handlers. images, contact and inquiries may be
// nil, the matching endpoints then answer as unavailable.
func NewHandler(loader CatalogLoader, images *config.CDNConfig, submitter ContactSubmitter, inquiries InquiryReader, pageSize int, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if pageSize <= 0 {
		pageSize = filter.DefaultPageSize
	}

	return &Handler{
		catalog:   loader,
		images:    images,
		contact:   submitter,
		inquiries: inquiries,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loadCatalog answers the request with an error panel when the catalog
// cannot be loaded. The caller stops when ok is false.
func (h *Handler) loadCatalog(c *gin.Context) (*models.Catalog, bool) {
	doc, err := h.catalog.Load(c.Request.Context())
	if err == nil {
		return doc, true
	}

	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Failed to load catalog")
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":  "No se pudo cargar la información de propiedades.",
		"reason": loadFailureReason(err),
		"retry":  true,
	})
	return nil, false
}

func loadFailureReason(err error) string {
	var loadErr *catalog.LoadError
	switch {
	case errors.As(err, &loadErr):
		return string(loadErr.Reason)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unavailable"
	}
}

// GetFeatured returns the landing page highlights.
func (h *Handler) GetFeatured(c *gin.Context) {
	doc, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": views.RenderFeatured(doc)})
}

// GetCategory renders a category page. Solares honour the filter and page
// query parameters, the other categories render their full grid.
func (h *Handler) GetCategory(c *gin.Context) {
	key := models.ParseCategoryKey(c.Param("category"))

	doc, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	if key != models.CategorySolares {
		c.JSON(http.StatusOK, views.RenderListings(doc, key))
		return
	}

	f, number, warnings := filter.Parse(c.Request.URL.Query())
	if len(warnings) > 0 {
		h.logger.WithField("warnings", warnings).Debug("Replaced malformed filter inputs")
	}
	if warnings == nil {
		warnings = []filter.ValidationError{}
	}

	page := views.NewSolaresPage(doc, h.pageSize)
	page.Apply(f)
	page.GoTo(number)

	c.JSON(http.StatusOK, SolaresResponse{SolaresView: page.Render(), Warnings: warnings})
}

// GetDetail resolves the subject of a property-detail page.
func (h *Handler) GetDetail(c *gin.Context) {
	id := c.Query("id")
	key := models.ParseCategoryKey(c.Query("type"))
	log := h.logger.WithFields(logrus.Fields{"id": id, "type": key})

	result := h.resolveDetail(c.Request.Context(), log, key, id)
	switch r := result.(type) {
	case detail.Resolved:
		listing := views.NewListingDetail(r.Listing, r.Category)
		state := carousel.New(carousel.Gallery(r.Listing, h.images)).State()
		c.JSON(http.StatusOK, DetailResponse{Kind: r.Kind(), Listing: &listing, Carousel: &state})
	case detail.ContactFallback:
		c.JSON(http.StatusOK, DetailResponse{Kind: r.Kind(), Prefill: &r.Prefill})
	case detail.NotFound:
		log.WithField("reason", r.Reason).Info("Detail subject not found")
		status := http.StatusNotFound
		if r.Reason == detail.ReasonCatalogUnavailable {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, DetailResponse{Kind: r.Kind(), NotFound: &r})
	}
}

// resolveDetail loads the catalog only when there is an identifier to look
// up. Unresolved solares identifiers become an inquiry form.
func (h *Handler) resolveDetail(ctx context.Context, log *logrus.Entry, key models.CategoryKey, id string) detail.Result {
	if strings.TrimSpace(id) == "" {
		return detail.Resolve(nil, key, id)
	}

	doc, err := h.catalog.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load catalog for detail page")
		return detail.Fallback(key, id, detail.ReasonCatalogUnavailable)
	}

	result := detail.Resolve(doc, key, id)
	if nf, ok := result.(detail.NotFound); ok {
		return detail.Fallback(key, id, nf.Reason)
	}
	return result
}

// GetImages lists the CDN images of a numbered property.
func (h *Handler) GetImages(c *gin.Context) {
	number := c.Param("propertyId")

	property, ok := h.images.Property(number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found in CDN configuration"})
		return
	}

	urls, _ := h.images.ImageURLs(number)
	main, _ := h.images.MainImageURL(number)
	c.JSON(http.StatusOK, gin.H{
		"property_id": number,
		"name":        property.Name,
		"images":      urls,
		"main_image":  main,
	})
}

// SubmitContact validates, relays and records a contact form.
func (h *Handler) SubmitContact(c *gin.Context) {
	if h.contact == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not available"})
		return
	}

	var submission contact.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		h.logger.WithError(err).Warn("Invalid contact submission")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if submission.FormType == "" {
		submission.FormType = models.FormGeneral
	}

	inquiry, err := h.contact.Submit(c.Request.Context(), submission)
	if err != nil {
		resp := gin.H{"error": "No se pudo enviar el formulario. Intente de nuevo."}
		if inquiry != nil {
			resp["inquiry_id"] = inquiry.ID
		}
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent", "inquiry_id": inquiry.ID})
}

// GetInquiries lists recorded inquiries, newest first, optionally for one
// subject.
func (h *Handler) GetInquiries(c *gin.Context) {
	if h.inquiries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inquiry store is not available"})
		return
	}

	var (
		inquiries []models.Inquiry
		err       error
	)
	if subject := c.Query("subject_id"); subject != "" {
		inquiries, err = h.inquiries.InquiriesBySubject(subject)
	} else {
		limit := defaultInquiryLimit
		if raw := c.Query("limit"); raw != "" {
			n, convErr := strconv.Atoi(raw)
			if convErr != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = min(n, maxInquiryLimit)
		}
		inquiries, err = h.inquiries.RecentInquiries(limit)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to read inquiries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read inquiries"})
		return
	}

	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "count": len(inquiries)})
}
