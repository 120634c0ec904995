package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog/internal/application/dataset/dto"
	"catalog/internal/application/dataset/usecases"
	"catalog/internal/interfaces/http/middleware"
	"catalog/internal/shared/logger"
	"catalog/internal/shared/utils"
)

// DatasetHandler exposes the catalog operations over HTTP.
type DatasetHandler struct {
	listUC       *usecases.ListDatasetsUseCase
	getUC        *usecases.GetDatasetUseCase
	createUC     *usecases.CreateDatasetUseCase
	updateUC     *usecases.UpdateDatasetUseCase
	deleteUC     *usecases.DeleteDatasetUseCase
	listTablesUC *usecases.ListPreviewTablesUseCase
	previewUC    *usecases.GetPreviewTableUseCase
	exportUC     *usecases.ExportDatasetUseCase
	logger       logger.Interface
}

func NewDatasetHandler(
	listUC *usecases.ListDatasetsUseCase,
	getUC *usecases.GetDatasetUseCase,
	createUC *usecases.CreateDatasetUseCase,
	updateUC *usecases.UpdateDatasetUseCase,
	deleteUC *usecases.DeleteDatasetUseCase,
	listTablesUC *usecases.ListPreviewTablesUseCase,
	previewUC *usecases.GetPreviewTableUseCase,
	exportUC *usecases.ExportDatasetUseCase,
	logger logger.Interface,
) *DatasetHandler {
	return &DatasetHandler{
		listUC:       listUC,
		getUC:        getUC,
		createUC:     createUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		listTablesUC: listTablesUC,
		previewUC:    previewUC,
		exportUC:     exportUC,
		logger:       logger,
	}
}

// List returns every catalog entry visible to the caller.
func (h *DatasetHandler) List(c *gin.Context) {
	resp, err := h.listUC.Execute(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		h.logger.Errorw("failed to list datasets", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one enriched metadata document.
func (h *DatasetHandler) Get(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}

	doc, err := h.getUC.Execute(c.Request.Context(), middleware.BearerToken(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Create registers a storage object in the catalog.
func (h *DatasetHandler) Create(c *gin.Context) {
	var cmd dto.CreateDatasetCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.createUC.Execute(c.Request.Context(), middleware.BearerToken(c), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, resp, "dataset registered successfully")
}

// Update replaces a dataset's metadata document.
func (h *DatasetHandler) Update(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}

	var metadata json.RawMessage
	if err := c.ShouldBindJSON(&metadata); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.updateUC.Execute(c.Request.Context(), middleware.BearerToken(c), id, metadata); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "dataset updated successfully", nil)
}

// Delete removes a catalog entry.
func (h *DatasetHandler) Delete(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.BearerToken(c), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListPreviewTables lists the previewable tables of a dataset.
func (h *DatasetHandler) ListPreviewTables(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}

	tables, err := h.listTablesUC.Execute(c.Request.Context(), middleware.BearerToken(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"tables": tables})
}

// GetPreviewTable returns sample rows from one table of a dataset.
func (h *DatasetHandler) GetPreviewTable(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}
	tableName := c.Param("table")

	maxRows := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid limit")
			return
		}
		maxRows = parsed
	}

	preview, err := h.previewUC.Execute(c.Request.Context(), middleware.BearerToken(c), id, tableName, maxRows)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Export copies a dataset's data into a destination workspace.
func (h *DatasetHandler) Export(c *gin.Context) {
	id, ok := h.datasetID(c)
	if !ok {
		return
	}

	var cmd dto.ExportDatasetCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.exportUC.Execute(c.Request.Context(), middleware.BearerToken(c), id, cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "export started", nil)
}

func (h *DatasetHandler) datasetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid dataset ID")
		return uuid.Nil, false
	}
	return id, true
}
