package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/geckostudy/geckoden/internal/app"
	"github.com/geckostudy/geckoden/internal/models"
)

type ResourceHandler struct {
	service *app.Service
}

func NewResourceHandler(service *app.Service) *ResourceHandler {
	return &ResourceHandler{
		service: service,
	}
}

func (h *ResourceHandler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	semester := models.Semester(r.URL.Query().Get("semester"))

	resources, err := h.service.ListResources(semester)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": resources,
	})
}

func (h *ResourceHandler) HandlePublishResource(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	var req app.PublishResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resource, err := h.service.PublishResource(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	logger.Debug.Printf("Published resource %s (%s) for semester %s week %d",
		resource.Title, resource.Type, resource.Semester, resource.Week)

	writeJSON(w, http.StatusCreated, resource)
}
