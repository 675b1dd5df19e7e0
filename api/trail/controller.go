package trailapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/trailgen-api/api/identity"
	dmn "github.com/beka-birhanu/trailgen-api/domain"
	"github.com/beka-birhanu/trailgen-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrailController manages trail generation requests and downloads.
type TrailController struct {
	trailRepo i.TrailRepo
	scheduler i.GenerationScheduler
	maxSize   int
}

// NewTrailController initializes a TrailController. maxSize bounds the
// accepted grid dimension; sizes above it are rejected at the API edge.
func NewTrailController(tr i.TrailRepo, gs i.GenerationScheduler, maxSize int) (*TrailController, error) {
	if tr == nil || gs == nil {
		return nil, errors.New("trail controller requires a trail repo and a scheduler")
	}
	return &TrailController{
		trailRepo: tr,
		scheduler: gs,
		maxSize:   maxSize,
	}, nil
}

// RegisterPublic registers public routes.
func (tc *TrailController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (tc *TrailController) RegisterProtected(route *gin.RouterGroup) {
	trails := route.Group("/trails")
	{
		trails.POST("/", tc.generate)
		trails.GET("/", tc.list)
		trails.GET("/:ID", tc.info)
		trails.GET("/:ID/export", tc.export)
	}
}

// generate validates the request, stores a pending trail, and queues it.
func (tc *TrailController) generate(ctx *gin.Context) {
	ownerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var request GenerateRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if tc.maxSize > 0 && request.Size > tc.maxSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("size must not exceed %d", tc.maxSize)})
		return
	}

	trail, err := dmn.NewTrail(dmn.TrailConfig{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       request.Name,
		Size:       request.Size,
		Tortuosity: request.Tortuosity,
		Sparsity:   request.Sparsity,
		MaxSteps:   request.MaxSteps,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := tc.trailRepo.Save(trail); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while storing trail request"})
		return
	}

	if err := tc.scheduler.Schedule(context.Background(), trail.ID, trail.Size); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while queuing trail"})
		return
	}

	ctx.JSON(http.StatusAccepted, &GenerateResponse{
		ID:     trail.ID.String(),
		Status: string(trail.Status),
	})
}

// list returns the caller's trails, newest first, without cells.
func (tc *TrailController) list(ctx *gin.Context) {
	ownerID, ok := callerID(ctx)
	if !ok {
		return
	}

	trails, err := tc.trailRepo.ByOwner(ownerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing trails"})
		return
	}

	response := make([]*TrailResponse, 0, len(trails))
	for _, trail := range trails {
		response = append(response, newTrailResponse(trail))
	}
	ctx.JSON(http.StatusOK, response)
}

// info retrieves the metadata of a single trail.
func (tc *TrailController) info(ctx *gin.Context) {
	trail, ok := tc.ownedTrail(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newTrailResponse(trail))
}

// export streams a finished trail as a text attachment, one "(col, row)"
// line per marked cell in row-major order.
func (tc *TrailController) export(ctx *gin.Context) {
	trail, ok := tc.ownedTrail(ctx)
	if !ok {
		return
	}

	if trail.Status != dmn.TrailStatusDone {
		ctx.JSON(http.StatusConflict, gin.H{"error": "trail is not generated yet"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", trail.Filename()))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", trail.ExportText())
}

// ownedTrail loads the trail from the :ID parameter and verifies the caller
// owns it. Foreign trails read as not found.
func (tc *TrailController) ownedTrail(ctx *gin.Context) (*dmn.Trail, bool) {
	ownerID, ok := callerID(ctx)
	if !ok {
		return nil, false
	}

	trailID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid trail id"})
		return nil, false
	}

	trail, err := tc.trailRepo.ByID(trailID)
	if err != nil || trail.OwnerID != ownerID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "trail not found"})
		return nil, false
	}

	return trail, true
}

// callerID extracts the authenticated user's ID from the claims the
// authorization middleware attached.
func callerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(identity.ContextUserClaims)
	if !exists {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	idString, ok := claims["userID"].(string)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	return id, true
}
